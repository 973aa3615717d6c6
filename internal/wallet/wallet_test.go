package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		user   string
		amount int64
		want   error
	}{
		{"u1", 10, nil},
		{"", 10, ErrInvalidUser},
		{"u1", 0, ErrInvalidAmount},
		{"u1", -5, ErrInvalidAmount},
	}
	for _, tc := range tests {
		if got := Validate(tc.user, tc.amount); !errors.Is(got, tc.want) {
			t.Errorf("Validate(%q, %d) = %v, expected %v", tc.user, tc.amount, got, tc.want)
		}
	}
}

func TestEntryTemplate(t *testing.T) {
	l := NewRedisLedger(nil)
	l.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	tmpl, err := l.entryTemplate("u1", -250, "purchase: 100% cotton tshirt")
	if err != nil {
		t.Fatalf("entryTemplate: %v", err)
	}

	var e Entry
	if err := json.Unmarshal([]byte(fmt.Sprintf(tmpl, 750)), &e); err != nil {
		t.Fatalf("formatted template is not JSON: %v\n%s", err, tmpl)
	}
	if e.Balance != 750 || e.Delta != -250 || e.UserID != "u1" {
		t.Errorf("entry = %+v", e)
	}
	if e.Reason != "purchase: 100% cotton tshirt" {
		t.Errorf("reason = %q, percent signs should survive formatting", e.Reason)
	}
}

// TestRedisLedger runs against a live server when ARCADE_TEST_REDIS_URL is set.
func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		delta   int64
		next    int64
		want    error
	}{
		{"credit", 100, 50, 150, nil},
		{"debit", 100, -100, 0, nil},
		{"overdraw", 100, -101, 0, ErrInsufficientFunds},
		{"up to max", math.MaxInt64 - 1, 1, math.MaxInt64, nil},
		{"overflow", 1, math.MaxInt64, 0, ErrBalanceOverflow},
		{"overflow at max", math.MaxInt64, 1, 0, ErrBalanceOverflow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, err := Apply(tc.balance, tc.delta)
			if !errors.Is(err, tc.want) || next != tc.next {
				t.Errorf("Apply(%d, %d) = %d, %v; expected %d, %v", tc.balance, tc.delta, next, err, tc.next, tc.want)
			}
		})
	}

	if !errors.Is(ErrBalanceOverflow, ErrInvalidAmount) {
		t.Error("ErrBalanceOverflow should match ErrInvalidAmount")
	}
}

func TestRedisLedger(t *testing.T) {
	url := os.Getenv("ARCADE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ARCADE_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	rdb, err := Connect(ctx, url)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer rdb.Close()

	user := fmt.Sprintf("test-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		rdb.Del(context.Background(), balanceKeyPrefix+user, historyKeyPrefix+user)
	})

	l := NewRedisLedger(rdb)

	if bal, err := l.Balance(ctx, user); err != nil || bal != 0 {
		t.Fatalf("Balance(new user) = %d, %v", bal, err)
	}
	if bal, err := l.Credit(ctx, user, 300, "grant"); err != nil || bal != 300 {
		t.Fatalf("Credit = %d, %v", bal, err)
	}
	if bal, err := l.Debit(ctx, user, 250, "tshirt"); err != nil || bal != 50 {
		t.Fatalf("Debit = %d, %v", bal, err)
	}
	if _, err := l.Debit(ctx, user, 51, "hoodie"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("overdraw err = %v", err)
	}
	if bal, _ := l.Balance(ctx, user); bal != 50 {
		t.Errorf("failed debit changed the balance to %d", bal)
	}

	hist, err := l.History(ctx, user, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 || hist[0].Delta != -250 || hist[0].Balance != 50 || hist[1].Balance != 300 {
		t.Errorf("History = %+v", hist)
	}

	if _, err := l.Credit(ctx, user, math.MaxInt64, "overflow"); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("overflowing credit err = %v", err)
	}
	if bal, _ := l.Balance(ctx, user); bal != 50 {
		t.Errorf("failed credit changed the balance to %d", bal)
	}
}
