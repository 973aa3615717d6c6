package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	balanceKeyPrefix = "wallet:balance:"
	historyKeyPrefix = "wallet:history:"
	historyMax       = 500
)

// debitScript decrements the balance only when it covers the amount and
// appends the history entry in the same step. Returns -1 on insufficient
// funds. ARGV[3] carries the entry JSON with a "%d" placeholder for the
// resulting balance.
var debitScript = redis.NewScript(`
local bal = tonumber(redis.call('GET', KEYS[1]) or '0')
local amt = tonumber(ARGV[1])
if bal < amt then return -1 end
local nb = redis.call('DECRBY', KEYS[1], amt)
redis.call('LPUSH', KEYS[2], string.format(ARGV[3], nb))
redis.call('LTRIM', KEYS[2], 0, tonumber(ARGV[2]) - 1)
return nb
`)

var creditScript = redis.NewScript(`
local nb = redis.call('INCRBY', KEYS[1], tonumber(ARGV[1]))
redis.call('LPUSH', KEYS[2], string.format(ARGV[3], nb))
redis.call('LTRIM', KEYS[2], 0, tonumber(ARGV[2]) - 1)
return nb
`)

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("wallet: parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("wallet: ping redis: %w", err)
	}
	return client, nil
}

// RedisLedger keeps balances in Redis. Debits run as a Lua script so the
// check and the decrement are atomic across API instances.
type RedisLedger struct {
	rdb redis.Cmdable
	now func() time.Time
}

// NewRedisLedger wraps an existing client.
func NewRedisLedger(rdb redis.Cmdable) *RedisLedger {
	return &RedisLedger{rdb: rdb, now: time.Now}
}

var _ Ledger = (*RedisLedger)(nil)

// Balance returns the user's balance.
func (l *RedisLedger) Balance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrInvalidUser
	}
	n, err := l.rdb.Get(ctx, balanceKeyPrefix+userID).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("wallet: get balance: %w", err)
	}
	return n, nil
}

// Credit adds amount to the user's balance.
func (l *RedisLedger) Credit(ctx context.Context, userID string, amount int64, reason string) (int64, error) {
	if err := Validate(userID, amount); err != nil {
		return 0, err
	}
	tmpl, err := l.entryTemplate(userID, amount, reason)
	if err != nil {
		return 0, err
	}

	n, err := creditScript.Run(ctx, l.rdb, l.keys(userID), amount, historyMax, tmpl).Int64()
	if err != nil {
		// INCRBY refuses to leave the int64 range.
		if strings.Contains(err.Error(), "would overflow") {
			return 0, ErrBalanceOverflow
		}
		return 0, fmt.Errorf("wallet: credit: %w", err)
	}
	return n, nil
}

// Debit subtracts amount if the balance covers it.
func (l *RedisLedger) Debit(ctx context.Context, userID string, amount int64, reason string) (int64, error) {
	if err := Validate(userID, amount); err != nil {
		return 0, err
	}
	tmpl, err := l.entryTemplate(userID, -amount, reason)
	if err != nil {
		return 0, err
	}

	n, err := debitScript.Run(ctx, l.rdb, l.keys(userID), amount, historyMax, tmpl).Int64()
	if err != nil {
		return 0, fmt.Errorf("wallet: debit: %w", err)
	}
	if n < 0 {
		return 0, ErrInsufficientFunds
	}
	return n, nil
}

// History returns the most recent entries, newest first.
func (l *RedisLedger) History(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if userID == "" {
		return nil, ErrInvalidUser
	}
	if limit <= 0 {
		limit = 20
	}
	raw, err := l.rdb.LRange(ctx, historyKeyPrefix+userID, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("wallet: read history: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, r := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			return nil, fmt.Errorf("wallet: decode history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (l *RedisLedger) keys(userID string) []string {
	return []string{balanceKeyPrefix + userID, historyKeyPrefix + userID}
}

// entryTemplate encodes an Entry for string.format: literal percent signs
// are doubled and the balance field becomes a %d placeholder that the
// script fills with the resulting balance.
func (l *RedisLedger) entryTemplate(userID string, delta int64, reason string) (string, error) {
	e := Entry{UserID: userID, Delta: delta, Reason: reason, CreatedAt: l.now().UTC()}
	b, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("wallet: encode entry: %w", err)
	}
	tmpl := strings.ReplaceAll(string(b), "%", "%%")
	return strings.Replace(tmpl, `"balance":0`, `"balance":%d`, 1), nil
}
