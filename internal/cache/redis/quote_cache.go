package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chainarb/arbscan/internal/domain"
)

// QuoteCache implements domain.QuoteCache using Redis hashes. Each price is
// stored as a hash at key "quote:{key}" with fields "price" and "ts" (Unix
// nanosecond timestamp), expiring after the configured TTL so a stale price
// is a miss rather than a wrong answer.
type QuoteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewQuoteCache creates a QuoteCache backed by the given Client.
func NewQuoteCache(c *Client, ttl time.Duration) *QuoteCache {
	return &QuoteCache{rdb: c.Underlying(), ttl: ttl}
}

func quoteKey(key string) string {
	return "quote:" + key
}

// SetPrice stores the latest price and observation time under the key.
func (qc *QuoteCache) SetPrice(ctx context.Context, key string, price float64, ts time.Time) error {
	k := quoteKey(key)
	fields := map[string]interface{}{
		"price": strconv.FormatFloat(price, 'f', -1, 64),
		"ts":    strconv.FormatInt(ts.UnixNano(), 10),
	}
	pipe := qc.rdb.Pipeline()
	pipe.HSet(ctx, k, fields)
	if qc.ttl > 0 {
		pipe.Expire(ctx, k, qc.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: set quote %s: %w", key, err)
	}
	return nil
}

// GetPrice retrieves the latest price and observation time for the key. It
// returns domain.ErrNotFound when the key does not exist or has expired.
func (qc *QuoteCache) GetPrice(ctx context.Context, key string) (float64, time.Time, error) {
	vals, err := qc.rdb.HGetAll(ctx, quoteKey(key)).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis: get quote %s: %w", key, err)
	}
	if len(vals) == 0 {
		return 0, time.Time{}, domain.ErrNotFound
	}

	priceStr, ok := vals["price"]
	if !ok {
		return 0, time.Time{}, domain.ErrNotFound
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis: parse quote %s: %w", key, err)
	}

	tsStr, ok := vals["ts"]
	if !ok {
		return 0, time.Time{}, domain.ErrNotFound
	}
	tsNano, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis: parse ts %s: %w", key, err)
	}

	return price, time.Unix(0, tsNano), nil
}

// Compile-time interface check.
var _ domain.QuoteCache = (*QuoteCache)(nil)
