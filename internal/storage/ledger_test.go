package storage

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/mdlunited/arcade/internal/wallet"
)

func TestLedgerCreditDebit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if bal, err := store.Balance(ctx, "u1"); err != nil || bal != 0 {
		t.Fatalf("Balance(unknown) = %d, %v", bal, err)
	}

	bal, err := store.Credit(ctx, "u1", 500, "admin grant")
	if err != nil || bal != 500 {
		t.Fatalf("Credit = %d, %v", bal, err)
	}

	bal, err = store.Debit(ctx, "u1", 250, "purchase tshirt")
	if err != nil || bal != 250 {
		t.Fatalf("Debit = %d, %v", bal, err)
	}

	if bal, _ := store.Balance(ctx, "u2"); bal != 0 {
		t.Errorf("other users should be unaffected, got %d", bal)
	}
}

func TestLedgerRejectsOverdraw(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	store.Credit(ctx, "u1", 100, "grant")

	_, err := store.Debit(ctx, "u1", 101, "hoodie")
	if !errors.Is(err, wallet.ErrInsufficientFunds) {
		t.Fatalf("Debit err = %v, expected ErrInsufficientFunds", err)
	}
	if bal, _ := store.Balance(ctx, "u1"); bal != 100 {
		t.Errorf("failed debit changed the balance to %d", bal)
	}

	hist, _ := store.History(ctx, "u1", 10)
	if len(hist) != 1 {
		t.Errorf("failed debit should not be recorded, history = %+v", hist)
	}

	if bal, err := store.Debit(ctx, "u1", 100, "exact"); err != nil || bal != 0 {
		t.Errorf("debit of the whole balance = %d, %v", bal, err)
	}
}

func TestLedgerValidation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		user   string
		amount int64
		want   error
	}{
		{"zero", "u1", 0, wallet.ErrInvalidAmount},
		{"negative", "u1", -10, wallet.ErrInvalidAmount},
		{"no user", "", 10, wallet.ErrInvalidUser},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.Credit(ctx, tc.user, tc.amount, ""); !errors.Is(err, tc.want) {
				t.Errorf("Credit err = %v, expected %v", err, tc.want)
			}
			if _, err := store.Debit(ctx, tc.user, tc.amount, ""); !errors.Is(err, tc.want) {
				t.Errorf("Debit err = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestLedgerRejectsOverflow(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	store.Credit(ctx, "u1", 10, "grant")

	_, err := store.Credit(ctx, "u1", math.MaxInt64, "huge grant")
	if !errors.Is(err, wallet.ErrInvalidAmount) {
		t.Fatalf("Credit err = %v, expected ErrInvalidAmount", err)
	}
	if errors.Is(err, wallet.ErrInsufficientFunds) {
		t.Error("overflow should not read as insufficient funds")
	}
	if bal, _ := store.Balance(ctx, "u1"); bal != 10 {
		t.Errorf("failed credit changed the balance to %d", bal)
	}
	if hist, _ := store.History(ctx, "u1", 10); len(hist) != 1 {
		t.Errorf("failed credit should not be recorded, history = %+v", hist)
	}

	if bal, err := store.Credit(ctx, "u1", math.MaxInt64-10, "to the limit"); err != nil || bal != math.MaxInt64 {
		t.Errorf("credit up to the limit = %d, %v", bal, err)
	}
}

func TestLedgerHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.Credit(ctx, "u1", 300, "grant")
	store.Debit(ctx, "u1", 150, "mug")
	store.Debit(ctx, "u1", 100, "cap")

	hist, err := store.History(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(hist) != 3 {
		t.Fatalf("History len = %d", len(hist))
	}

	want := []wallet.Entry{
		{UserID: "u1", Delta: -100, Balance: 50, Reason: "cap"},
		{UserID: "u1", Delta: -150, Balance: 150, Reason: "mug"},
		{UserID: "u1", Delta: 300, Balance: 300, Reason: "grant"},
	}
	for i, w := range want {
		got := hist[i]
		got.CreatedAt = w.CreatedAt
		if got != w {
			t.Errorf("hist[%d] = %+v, expected %+v", i, got, w)
		}
	}

	if limited, _ := store.History(ctx, "u1", 1); len(limited) != 1 || limited[0].Reason != "cap" {
		t.Errorf("History(limit 1) = %+v", limited)
	}
}

func TestLedgerConcurrentDebitsNeverOverdraw(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	store.Credit(ctx, "u1", 1000, "grant")

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Debit(ctx, "u1", 100, "burst"); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if ok != 10 {
		t.Errorf("%d debits succeeded, expected exactly 10", ok)
	}
	if bal, _ := store.Balance(ctx, "u1"); bal != 0 {
		t.Errorf("final balance = %d, expected 0", bal)
	}
}
