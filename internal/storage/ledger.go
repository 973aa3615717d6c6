package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mdlunited/arcade/internal/wallet"
)

var _ wallet.Ledger = (*Store)(nil)

// Balance returns the user's points balance. Unknown users have zero.
func (s *Store) Balance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, wallet.ErrInvalidUser
	}
	return balanceOf(ctx, s.db, userID)
}

// Credit adds amount to the user's balance and records a ledger entry.
func (s *Store) Credit(ctx context.Context, userID string, amount int64, reason string) (int64, error) {
	if err := wallet.Validate(userID, amount); err != nil {
		return 0, err
	}
	return s.apply(ctx, userID, amount, reason)
}

// Debit subtracts amount when the balance covers it. Otherwise it returns
// wallet.ErrInsufficientFunds and changes nothing.
func (s *Store) Debit(ctx context.Context, userID string, amount int64, reason string) (int64, error) {
	if err := wallet.Validate(userID, amount); err != nil {
		return 0, err
	}
	return s.apply(ctx, userID, -amount, reason)
}

// apply runs the balance check, the update and the ledger insert in one
// transaction.
func (s *Store) apply(ctx context.Context, userID string, delta int64, reason string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin ledger tx: %w", err)
	}
	defer tx.Rollback()

	current, err := balanceOf(ctx, tx, userID)
	if err != nil {
		return 0, err
	}
	next, err := wallet.Apply(current, delta)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO wallets (user_id, balance, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(user_id) DO UPDATE SET balance = excluded.balance, updated_at = CURRENT_TIMESTAMP`,
		userID, next,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot update wallet: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO ledger_entries (user_id, delta, balance, reason) VALUES (?, ?, ?, ?)",
		userID, delta, next, reason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit ledger tx: %w", err)
	}
	return next, nil
}

// History returns the user's most recent ledger entries, newest first.
// A non-positive limit means 20.
func (s *Store) History(ctx context.Context, userID string, limit int) ([]wallet.Entry, error) {
	if userID == "" {
		return nil, wallet.ErrInvalidUser
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, delta, balance, reason, created_at
		 FROM ledger_entries
		 WHERE user_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query ledger: %w", err)
	}
	defer rows.Close()

	var entries []wallet.Entry
	for rows.Next() {
		var e wallet.Entry
		var createdAt any
		if err := rows.Scan(&e.UserID, &e.Delta, &e.Balance, &e.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan ledger row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func balanceOf(ctx context.Context, q queryRower, userID string) (int64, error) {
	var balance int64
	err := q.QueryRowContext(ctx, "SELECT balance FROM wallets WHERE user_id = ?", userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read balance: %w", err)
	}
	return balance, nil
}
