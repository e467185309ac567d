package domain

import (
	"context"
	"time"
)

// QuoteCache caches venue prices keyed by an opaque string (venue symbol or
// native-asset symbol). Implementations return ErrNotFound on a miss so
// callers can fall through to the live lookup.
type QuoteCache interface {
	SetPrice(ctx context.Context, key string, price float64, ts time.Time) error
	GetPrice(ctx context.Context, key string) (float64, time.Time, error)
}
