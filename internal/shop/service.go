package shop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mdlunited/arcade/internal/config"
	"github.com/mdlunited/arcade/internal/notify"
	"github.com/mdlunited/arcade/internal/wallet"
)

var (
	// ErrUnauthorized means the caller is anonymous or not allowed.
	ErrUnauthorized = errors.New("shop: unauthorized")
	// ErrInvalidAmount means a grant had a missing target or a
	// non-positive amount.
	ErrInvalidAmount = errors.New("shop: invalid amount")
	// ErrUnknownItem means the item id is not in the catalog.
	ErrUnknownItem = errors.New("shop: unknown item")
)

// User identifies the caller. ID comes from the auth token; Name is only
// used for display.
type User struct {
	ID   string
	Name string
}

func (u User) displayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

// Publisher hands messages to a notifier without blocking.
type Publisher interface {
	Publish(msg notify.Message) bool
}

// Receipt describes a completed purchase.
type Receipt struct {
	Item    config.StoreItem `json:"item"`
	Balance int64            `json:"balance"`
}

// Service runs store actions against a ledger.
type Service struct {
	ledger   wallet.Ledger
	catalog  *Catalog
	notifier Publisher
	adminID  string
	logger   *log.Logger
	now      func() time.Time
}

// NewService wires a service. notifier may be nil.
func NewService(ledger wallet.Ledger, catalog *Catalog, notifier Publisher, adminID string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		ledger:   ledger,
		catalog:  catalog,
		notifier: notifier,
		adminID:  adminID,
		logger:   logger,
		now:      time.Now,
	}
}

// Catalog returns the store catalog.
func (s *Service) Catalog() *Catalog { return s.catalog }

// IsAdmin reports whether userID may grant coins.
func (s *Service) IsAdmin(userID string) bool {
	return s.adminID != "" && userID == s.adminID
}

// Balance returns the caller's balance.
func (s *Service) Balance(ctx context.Context, user User) (int64, error) {
	if user.ID == "" {
		return 0, ErrUnauthorized
	}
	return s.ledger.Balance(ctx, user.ID)
}

// History returns the caller's recent ledger entries.
func (s *Service) History(ctx context.Context, user User, limit int) ([]wallet.Entry, error) {
	if user.ID == "" {
		return nil, ErrUnauthorized
	}
	return s.ledger.History(ctx, user.ID, limit)
}

// Purchase debits the item's price. On wallet.ErrInsufficientFunds the
// balance is unchanged. A successful purchase is announced on the
// notifier.
func (s *Service) Purchase(ctx context.Context, user User, itemID string) (Receipt, error) {
	if user.ID == "" {
		return Receipt{}, ErrUnauthorized
	}
	item, ok := s.catalog.Lookup(itemID)
	if !ok {
		return Receipt{}, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}

	balance, err := s.ledger.Debit(ctx, user.ID, item.Price, "purchase:"+item.ID)
	if err != nil {
		return Receipt{}, err
	}

	s.logger.Info("purchase", "user", user.ID, "item", item.ID, "price", item.Price, "balance", balance)
	s.publish(notify.PurchaseMessage(user.displayName(), item.Name, item.Price, balance, s.catalog.Currency(), s.now()))

	return Receipt{Item: item, Balance: balance}, nil
}

// Grant credits amount to target. Only the configured admin may grant.
func (s *Service) Grant(ctx context.Context, admin User, targetID string, amount int64) (int64, error) {
	if !s.IsAdmin(admin.ID) {
		return 0, ErrUnauthorized
	}
	if targetID == "" || amount <= 0 {
		return 0, ErrInvalidAmount
	}

	balance, err := s.ledger.Credit(ctx, targetID, amount, "grant:"+admin.ID)
	if err != nil {
		return 0, err
	}

	s.logger.Info("coins granted", "admin", admin.ID, "user", targetID, "amount", amount, "balance", balance)
	s.publish(notify.GrantMessage(admin.displayName(), targetID, amount, balance, s.now()))

	return balance, nil
}

func (s *Service) publish(msg notify.Message) {
	if s.notifier == nil {
		return
	}
	if !s.notifier.Publish(msg) {
		s.logger.Warn("notification dropped")
	}
}
