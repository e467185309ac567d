// Package service wires the discovery pipeline and the execution flow into
// the operations the HTTP layer and the run modes call.
package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/chainarb/arbscan/internal/domain"
	"github.com/chainarb/arbscan/internal/notify"
	"github.com/chainarb/arbscan/internal/scanner"
	"github.com/chainarb/arbscan/internal/snapshot"
)

// ScanService runs discovery passes and fans the results out to the signal
// bus, the notifier, and the optional archiver.
type ScanService struct {
	scanner  *scanner.Scanner
	snap     *snapshot.Store
	bus      domain.SignalBus
	notifier *notify.Notifier
	archiver domain.Archiver
	logger   *slog.Logger
}

// NewScanService creates a ScanService. archiver may be nil.
func NewScanService(
	sc *scanner.Scanner,
	snap *snapshot.Store,
	bus domain.SignalBus,
	notifier *notify.Notifier,
	archiver domain.Archiver,
	logger *slog.Logger,
) *ScanService {
	return &ScanService{
		scanner:  sc,
		snap:     snap,
		bus:      bus,
		notifier: notifier,
		archiver: archiver,
		logger:   logger.With(slog.String("component", "scan_service")),
	}
}

// Scan runs one discovery pass with optional per-request overrides and
// returns the ranked result. Side effects (bus, notifier, archiver) are
// best-effort and never fail the pass.
func (s *ScanService) Scan(ctx context.Context, ov scanner.Overrides) ([]domain.Opportunity, error) {
	ranked, err := s.scanner.Scan(ctx, ov)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(ranked); err == nil {
		if err := s.bus.Publish(ctx, domain.ChannelOpportunities, payload); err != nil {
			s.logger.WarnContext(ctx, "bus publish failed", slog.Any("error", err))
		}
	}

	if len(ranked) > 0 && s.notifier != nil {
		top := ranked[0]
		if err := s.notifier.Notify(ctx, notify.EventOpportunityFound,
			"Arbitrage opportunity", notify.FormatOpportunity(top)); err != nil {
			s.logger.WarnContext(ctx, "notify failed", slog.Any("error", err))
		}
	}

	if s.archiver != nil && len(ranked) > 0 {
		if key, err := s.archiver.ArchiveSnapshot(ctx, ranked); err != nil {
			s.logger.WarnContext(ctx, "snapshot archive failed", slog.Any("error", err))
		} else {
			s.logger.InfoContext(ctx, "snapshot archived", slog.String("key", key))
		}
	}

	return ranked, nil
}

// Opportunities serves the opportunities API: it always runs a fresh pass so
// the response reflects current venue prices, applying any per-request
// threshold or size override.
func (s *ScanService) Opportunities(ctx context.Context, minDiffPct, sizeQuote *float64) ([]domain.Opportunity, error) {
	return s.Scan(ctx, scanner.Overrides{MinDiffPct: minDiffPct, SizeQuote: sizeQuote})
}

// Snapshot returns the last completed scan's ranked set without rescanning.
func (s *ScanService) Snapshot() []domain.Opportunity {
	return s.snap.List()
}
