package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher queues messages and sends them from a single goroutine so
// callers never wait on the network. When the queue is full new messages
// are dropped.
type Dispatcher struct {
	sender  Sender
	logger  *log.Logger
	queue   chan Message
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDispatcher starts the worker. size is the queue capacity (min 1).
func NewDispatcher(sender Sender, size int, logger *log.Logger) *Dispatcher {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	d := &Dispatcher{
		sender:  sender,
		logger:  logger,
		queue:   make(chan Message, size),
		timeout: 15 * time.Second,
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Publish enqueues msg without blocking. Returns false if it was dropped.
func (d *Dispatcher) Publish(msg Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return false
	}
	select {
	case d.queue <- msg:
		return true
	default:
		d.logger.Warn("notification queue full, dropping message", "capacity", cap(d.queue))
		return false
	}
}

// Close stops accepting messages, sends what is queued and waits for the
// worker, or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.sender.Send(ctx, msg); err != nil && !errors.Is(err, ErrNotConfigured) {
			d.logger.Error("failed to send notification", "err", err)
		}
		cancel()
	}
}
