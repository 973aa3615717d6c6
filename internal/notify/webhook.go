// Package notify posts store events to a Discord-style webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultUsername is the display name the webhook posts under.
const DefaultUsername = "MDL Records"

// Message is the webhook payload.
type Message struct {
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []Embed `json:"embeds"`
}

// Embed is one rich card in a Message.
type Embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Author      *Author `json:"author,omitempty"`
	Footer      *Footer `json:"footer,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Author struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

type Footer struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// ErrNotConfigured is returned by Send on a Webhook without a URL.
var ErrNotConfigured = errors.New("notify: webhook url not configured")

// Webhook posts messages to a single URL.
type Webhook struct {
	url        string
	httpClient *http.Client
	logger     *log.Logger
}

// NewWebhook creates a webhook client. An empty url yields a client whose
// Send logs and returns ErrNotConfigured.
func NewWebhook(url string, logger *log.Logger) *Webhook {
	if logger == nil {
		logger = log.Default()
	}
	return &Webhook{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Configured reports whether a URL is set.
func (w *Webhook) Configured() bool {
	return w != nil && w.url != ""
}

// Send posts msg as JSON. Non-2xx responses are errors carrying the
// response body.
func (w *Webhook) Send(ctx context.Context, msg Message) error {
	if !w.Configured() {
		if w != nil {
			w.logger.Warn("webhook url not configured, dropping message")
		}
		return ErrNotConfigured
	}
	if msg.Username == "" {
		msg.Username = DefaultUsername
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notify: encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("notify: webhook returned %d: %s", resp.StatusCode, bytes.TrimSpace(b))
	}
	return nil
}
