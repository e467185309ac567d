package gas

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/chainarb/arbscan/internal/domain"
)

// CachedFeed wraps a NativePriceFeed with a read-through cache so repeated
// gas estimates within one pass do not hammer the reference exchange.
type CachedFeed struct {
	feed   NativePriceFeed
	cache  domain.QuoteCache
	logger *slog.Logger
}

// WithCache wraps feed with the given cache. A nil cache returns feed
// unchanged.
func WithCache(feed NativePriceFeed, cache domain.QuoteCache, logger *slog.Logger) NativePriceFeed {
	if cache == nil {
		return feed
	}
	return &CachedFeed{
		feed:   feed,
		cache:  cache,
		logger: logger.With(slog.String("component", "native_feed_cache")),
	}
}

// NativeUSD serves the native asset price from the cache when possible.
func (c *CachedFeed) NativeUSD(ctx context.Context, symbol string) (float64, error) {
	key := "native:" + symbol

	price, _, err := c.cache.GetPrice(ctx, key)
	if err == nil {
		return price, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		c.logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.Any("error", err))
	}

	price, err = c.feed.NativeUSD(ctx, symbol)
	if err != nil {
		return 0, err
	}
	if cacheErr := c.cache.SetPrice(ctx, key, price, time.Now().UTC()); cacheErr != nil {
		c.logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.Any("error", cacheErr))
	}
	return price, nil
}
