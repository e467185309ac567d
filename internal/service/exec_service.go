package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chainarb/arbscan/internal/domain"
	"github.com/chainarb/arbscan/internal/notify"
	"github.com/chainarb/arbscan/internal/snapshot"
)

// simulatedNote marks records produced without placing any orders.
const simulatedNote = "Simulated execution; no orders were placed."

// ExecService resolves opportunities from the current snapshot into
// execution records. Only dry-run execution is supported: a request for live
// settlement is rejected outright, never silently simulated.
type ExecService struct {
	snap          *snapshot.Store
	history       domain.HistoryLog
	store         domain.ExecutionStore
	archiver      domain.Archiver
	bus           domain.SignalBus
	notifier      *notify.Notifier
	defaultDryRun bool
	logger        *slog.Logger
	now           func() time.Time
}

// NewExecService creates an ExecService. store and archiver may be nil when
// no durable store or object storage is configured.
func NewExecService(
	snap *snapshot.Store,
	history domain.HistoryLog,
	store domain.ExecutionStore,
	archiver domain.Archiver,
	bus domain.SignalBus,
	notifier *notify.Notifier,
	defaultDryRun bool,
	logger *slog.Logger,
) *ExecService {
	return &ExecService{
		snap:          snap,
		history:       history,
		store:         store,
		archiver:      archiver,
		bus:           bus,
		notifier:      notifier,
		defaultDryRun: defaultDryRun,
		logger:        logger.With(slog.String("component", "exec_service")),
		now:           time.Now,
	}
}

// ExecuteRequest carries the parameters for executing an opportunity. A nil
// DryRun falls back to the configured default.
type ExecuteRequest struct {
	OpportunityID string `json:"opportunityId"`
	DryRun        *bool  `json:"dryRun,omitempty"`
}

// ExecuteResult pairs the recorded execution with its confirmation message.
type ExecuteResult struct {
	Message string                 `json:"message"`
	Record  domain.ExecutionRecord `json:"record"`
}

// Execute resolves the opportunity against the current snapshot and records
// a simulated execution. Opportunities from an earlier snapshot fail with
// ErrStaleOpportunity; a live request fails with ErrLiveDisabled.
func (s *ExecService) Execute(ctx context.Context, req ExecuteRequest) (ExecuteResult, error) {
	dryRun := s.defaultDryRun
	if req.DryRun != nil {
		dryRun = *req.DryRun
	}
	if !dryRun {
		return ExecuteResult{}, domain.ErrLiveDisabled
	}

	opp, err := s.snap.Resolve(req.OpportunityID)
	if err != nil {
		return ExecuteResult{}, err
	}

	pnl := opp.EstProfitUSD
	if pnl < 0 {
		pnl = 0
	}

	rec := domain.ExecutionRecord{
		ID:        uuid.NewString(),
		Base:      opp.Base,
		Quote:     opp.Quote,
		Chain:     opp.Chain,
		BuyOn:     opp.BuyOn,
		SellOn:    opp.SellOn,
		SizeQuote: opp.SizeQuote,
		PnLUSD:    pnl,
		FeesUSD:   opp.FeesUSD,
		GasUSD:    opp.GasUSD,
		Timestamp: s.now().UTC(),
		DryRun:    true,
		TxHashes:  []string{},
		Notes:     simulatedNote,
	}

	s.record(ctx, rec)
	return ExecuteResult{
		Message: fmt.Sprintf("Executed %s/%s %s -> %s", opp.Base, opp.Quote, opp.BuyOn, opp.SellOn),
		Record:  rec,
	}, nil
}

// SimulateRequest carries the optional shape of a fabricated record.
type SimulateRequest struct {
	Base   string   `json:"base,omitempty"`
	Quote  string   `json:"quote,omitempty"`
	Chain  string   `json:"chain,omitempty"`
	PnLUSD *float64 `json:"pnlUsd,omitempty"`
}

// Simulate injects a fabricated execution record into the history, for
// exercising the trades feed and downstream consumers without a live
// opportunity.
func (s *ExecService) Simulate(ctx context.Context, req SimulateRequest) domain.ExecutionRecord {
	base := req.Base
	if base == "" {
		base = "ETH"
	}
	quote := req.Quote
	if quote == "" {
		quote = "USDT"
	}
	chain := domain.ChainID(req.Chain)
	if !chain.Valid() {
		chain = domain.ChainEthereum
	}
	pnl := 12.34
	if req.PnLUSD != nil {
		pnl = *req.PnLUSD
	}

	rec := domain.ExecutionRecord{
		ID:        uuid.NewString(),
		Base:      base,
		Quote:     quote,
		Chain:     chain,
		BuyOn:     domain.VenueBinance,
		SellOn:    domain.VenueUniswapV2,
		SizeQuote: 1000,
		PnLUSD:    pnl,
		FeesUSD:   9.0,
		GasUSD:    5.0,
		Timestamp: s.now().UTC(),
		DryRun:    true,
		TxHashes:  []string{},
		Notes:     simulatedNote,
	}

	s.record(ctx, rec)
	return rec
}

// History returns the most recent execution records, newest first. With a
// durable store configured it is the source of truth (it outlives restarts
// and the in-memory cap); a failed read degrades to the in-memory log.
func (s *ExecService) History(ctx context.Context, limit int) []domain.ExecutionRecord {
	if s.store != nil {
		recs, err := s.store.ListRecent(ctx, limit)
		if err == nil {
			return recs
		}
		s.logger.WarnContext(ctx, "durable history read failed, serving in-memory log",
			slog.Any("error", err))
	}
	return s.history.List(limit)
}

// Trade returns one execution record by id, checking the in-memory log first
// and falling back to the durable store for records that have aged out.
func (s *ExecService) Trade(ctx context.Context, id string) (domain.ExecutionRecord, error) {
	for _, rec := range s.history.List(0) {
		if rec.ID == id {
			return rec, nil
		}
	}
	if s.store != nil {
		return s.store.GetByID(ctx, id)
	}
	return domain.ExecutionRecord{}, domain.ErrNotFound
}

// record appends to the in-memory history and mirrors to the durable store,
// the archiver, the bus, and the notifier. Only the history append is
// load-bearing.
func (s *ExecService) record(ctx context.Context, rec domain.ExecutionRecord) {
	s.history.Append(rec)

	if s.store != nil {
		if err := s.store.Insert(ctx, rec); err != nil {
			s.logger.WarnContext(ctx, "durable insert failed",
				slog.String("id", rec.ID),
				slog.Any("error", err))
		} else if total, err := s.store.SumPnL(ctx, startOfDayUTC(s.now())); err != nil {
			s.logger.WarnContext(ctx, "pnl summary failed", slog.Any("error", err))
		} else {
			s.logger.InfoContext(ctx, "execution persisted",
				slog.String("id", rec.ID),
				slog.Float64("pnl_today_usd", total))
		}
	}

	if s.archiver != nil {
		if key, err := s.archiver.ArchiveHistory(ctx, s.history.List(0)); err != nil {
			s.logger.WarnContext(ctx, "history archive failed", slog.Any("error", err))
		} else {
			s.logger.InfoContext(ctx, "history archived", slog.String("key", key))
		}
	}

	if payload, err := json.Marshal(rec); err == nil {
		if err := s.bus.Publish(ctx, domain.ChannelTrades, payload); err != nil {
			s.logger.WarnContext(ctx, "bus publish failed", slog.Any("error", err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, notify.EventTradeRecorded,
			"Execution recorded", notify.FormatExecution(rec)); err != nil {
			s.logger.WarnContext(ctx, "notify failed", slog.Any("error", err))
		}
	}
}

// startOfDayUTC truncates t to midnight UTC, the window for the running
// daily PnL summary.
func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
