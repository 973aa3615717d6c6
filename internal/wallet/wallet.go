// Package wallet defines the points ledger used by the store: a per-user
// balance that can be credited and debited, never going below zero.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInsufficientFunds is returned by Debit when the balance is lower
	// than the amount. The balance is left untouched.
	ErrInsufficientFunds = errors.New("wallet: insufficient funds")

	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("wallet: amount must be positive")

	// ErrBalanceOverflow is returned when a credit would push the balance
	// past the largest representable amount. It matches ErrInvalidAmount.
	ErrBalanceOverflow = fmt.Errorf("%w: balance would overflow", ErrInvalidAmount)

	// ErrInvalidUser is returned for an empty user id.
	ErrInvalidUser = errors.New("wallet: user id required")
)

// Entry is one balance change.
type Entry struct {
	UserID    string    `json:"user_id"`
	Delta     int64     `json:"delta"`
	Balance   int64     `json:"balance"` // Balance after the change
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// Ledger stores balances. Credit and Debit return the new balance.
// Unknown users have a zero balance.
type Ledger interface {
	Balance(ctx context.Context, userID string) (int64, error)
	Credit(ctx context.Context, userID string, amount int64, reason string) (int64, error)
	Debit(ctx context.Context, userID string, amount int64, reason string) (int64, error)
	History(ctx context.Context, userID string, limit int) ([]Entry, error)
}

// Validate checks the arguments shared by Credit and Debit.
func Validate(userID string, amount int64) error {
	if userID == "" {
		return ErrInvalidUser
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Apply returns balance+delta, or ErrInsufficientFunds when the result
// would be negative and ErrBalanceOverflow when it would not fit in int64.
func Apply(balance, delta int64) (int64, error) {
	if delta > 0 && balance > math.MaxInt64-delta {
		return 0, ErrBalanceOverflow
	}
	next := balance + delta
	if next < 0 {
		return 0, ErrInsufficientFunds
	}
	return next, nil
}
