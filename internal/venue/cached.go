package venue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/chainarb/arbscan/internal/domain"
)

// CachedSource wraps a QuoteSource with a read-through price cache. A cache
// hit skips the venue call entirely; cache failures fall through to the live
// lookup so the cache can never make a venue less available.
type CachedSource struct {
	src    QuoteSource
	cache  domain.QuoteCache
	logger *slog.Logger
}

// WithCache wraps src with the given cache. A nil cache returns src
// unchanged.
func WithCache(src QuoteSource, cache domain.QuoteCache, logger *slog.Logger) QuoteSource {
	if cache == nil {
		return src
	}
	return &CachedSource{
		src:    src,
		cache:  cache,
		logger: logger.With(slog.String("component", "quote_cache")),
	}
}

// Name returns the wrapped venue's identifier.
func (c *CachedSource) Name() string { return c.src.Name() }

// Kind reports the wrapped venue's class.
func (c *CachedSource) Kind() domain.VenueKind { return c.src.Kind() }

// Quote serves from the cache when possible, otherwise fetches live and
// stores the result.
func (c *CachedSource) Quote(ctx context.Context, pair domain.Pair) (float64, error) {
	key := c.src.Name() + ":" + pair.String()

	price, _, err := c.cache.GetPrice(ctx, key)
	if err == nil {
		return price, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		c.logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.Any("error", err))
	}

	price, err = c.src.Quote(ctx, pair)
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
