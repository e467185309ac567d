// Package scanner implements the discovery pipeline: concurrent quote
// gathering across venues, pairwise spread evaluation with the fee model,
// and ranked snapshot production.
package scanner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chainarb/arbscan/internal/domain"
	"github.com/chainarb/arbscan/internal/venue"
)

// Aggregator fans one pair out to every eligible venue and collects the
// quotes that succeed. A failed venue is logged and skipped; it never fails
// the pass.
type Aggregator struct {
	registry     *venue.Registry
	quoteTimeout time.Duration
	logger       *slog.Logger
}

// NewAggregator creates a quote aggregator over the venue registry. Each
// venue call is bounded by quoteTimeout independently of the pass deadline.
func NewAggregator(registry *venue.Registry, quoteTimeout time.Duration, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		registry:     registry,
		quoteTimeout: quoteTimeout,
		logger:       logger.With(slog.String("component", "aggregator")),
	}
}

// Gather queries every eligible venue for the pair concurrently and returns
// the successful quotes in registry order. An empty result is not an error;
// the evaluator decides whether enough venues answered.
func (a *Aggregator) Gather(ctx context.Context, pair domain.Pair) []domain.Quote {
	sources := a.registry.For(pair.Chain)
	results := make([]*domain.Quote, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src venue.QuoteSource) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, a.quoteTimeout)
			defer cancel()

			price, err := src.Quote(callCtx, pair)
			if err != nil {
				a.logger.WarnContext(ctx, "venue quote failed",
					slog.String("venue", src.Name()),
					slog.String("pair", pair.String()),
					slog.Any("error", err))
				return
			}
			q := domain.Quote{
				Venue: src.Name(),
				Base:  pair.Base,
				Quote: pair.Quote,
				Price: price,
				Kind:  src.Kind(),
			}
			if q.Kind == domain.VenueDEX {
				q.Chain = pair.Chain
			}
			results[i] = &q
		}(i, src)
	}
	wg.Wait()

	quotes := make([]domain.Quote, 0, len(sources))
	for _, q := range results {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	return quotes
}

// GatherAll runs Gather for every pair concurrently and returns quotes keyed
// by pair index. Pair order is preserved so evaluation is deterministic.
func (a *Aggregator) GatherAll(ctx context.Context, pairs []domain.Pair) [][]domain.Quote {
	out := make([][]domain.Quote, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range pairs {
		g.Go(func() error {
			out[i] = a.Gather(gctx, p)
			return nil
		})
	}
	g.Wait()
	return out
}
