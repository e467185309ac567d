package scanner

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/chainarb/arbscan/internal/domain"
	"github.com/chainarb/arbscan/internal/snapshot"
)

// GasOracle estimates the USD cost of one on-chain swap. *gas.Estimator
// satisfies it.
type GasOracle interface {
	SwapCostUSD(ctx context.Context, id domain.ChainID) float64
}

// Overrides carries per-request parameter overrides for a single scan pass.
// Nil fields keep the configured values.
type Overrides struct {
	MinDiffPct *float64
	SizeQuote  *float64
}

// Scanner runs the full discovery pass: gather quotes for every configured
// pair, evaluate spreads, rank, and publish the snapshot.
type Scanner struct {
	agg        *Aggregator
	gas        GasOracle
	snap       *snapshot.Store
	pairs      []domain.Pair
	eco        Economics
	maxResults int
	logger     *slog.Logger
}

// New creates a scanner over the configured pair universe.
func New(agg *Aggregator, gas GasOracle, snap *snapshot.Store, pairs []domain.Pair, eco Economics, maxResults int, logger *slog.Logger) *Scanner {
	return &Scanner{
		agg:        agg,
		gas:        gas,
		snap:       snap,
		pairs:      pairs,
		eco:        eco,
		maxResults: maxResults,
		logger:     logger.With(slog.String("component", "scanner")),
	}
}

// Scan runs one discovery pass and replaces the snapshot with the ranked
// result. Pairs with fewer than two quotes are skipped; a pass with zero
// usable pairs still succeeds and yields an empty snapshot.
func (s *Scanner) Scan(ctx context.Context, ov Overrides) ([]domain.Opportunity, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.ErrContextDone
	}
	start := time.Now()

	eco := s.eco
	if ov.MinDiffPct != nil {
		eco.MinDiffPct = *ov.MinDiffPct
	}
	if ov.SizeQuote != nil {
		eco.SizeQuote = *ov.SizeQuote
	}

	quotesByPair := s.agg.GatherAll(ctx, s.pairs)
	now := time.Now().UTC()

	var all []domain.Opportunity
	for i, pair := range s.pairs {
		quotes := quotesByPair[i]
		if len(quotes) < 2 {
			s.logger.InfoContext(ctx, "pair skipped, not enough quotes",
				slog.String("pair", pair.String()),
				slog.Int("quotes", len(quotes)),
				slog.Any("error", domain.ErrInsufficientQuotes))
			continue
		}
		gasUSD := s.gas.SwapCostUSD(ctx, pair.Chain)
		all = append(all, Evaluate(pair, quotes, eco, gasUSD, now)...)
	}

	ranked := Rank(all, s.maxResults)
	s.snap.Replace(ranked)

	s.logger.InfoContext(ctx, "scan completed",
		slog.Int("pairs", len(s.pairs)),
		slog.Int("opportunities", len(ranked)),
		slog.Duration("elapsed", time.Since(start)))
	return ranked, nil
}

// Rank sorts opportunities by estimated net profit, highest first, and
// truncates to max entries. Ties break on the larger raw spread so ordering
// is deterministic.
func Rank(opps []domain.Opportunity, max int) []domain.Opportunity {
	sort.SliceStable(opps, func(i, j int) bool {
		if opps[i].EstProfitUSD != opps[j].EstProfitUSD {
			return opps[i].EstProfitUSD > opps[j].EstProfitUSD
		}
		return opps[i].DiffPct > opps[j].DiffPct
	})
	if max > 0 && len(opps) > max {
		opps = opps[:max]
	}
	return opps
}
