// Package notify delivers operator alerts for discovered opportunities and
// recorded executions. Alerts fan out to every configured sender and can be
// filtered by event type.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chainarb/arbscan/internal/domain"
)

// Event types the notifier recognises.
const (
	EventOpportunityFound = "opportunity_found"
	EventTradeRecorded    = "trade_recorded"
	EventError            = "error"
)

// Sender is the interface that each notification channel must implement.
type Sender interface {
	// Send delivers a notification with the given title and message body.
	Send(ctx context.Context, title, message string) error
	// Name returns a human-readable identifier for the sender.
	Name() string
}

// Notifier dispatches notifications to one or more Senders. Notify forwards
// only events in the allowed set; an empty set allows everything.
type Notifier struct {
	senders []Sender
	events  map[string]bool
	logger  *slog.Logger
}

// NewNotifier creates a Notifier delivering to the given senders.
func NewNotifier(senders []Sender, events []string, logger *slog.Logger) *Notifier {
	allowed := make(map[string]bool, len(events))
	for _, e := range events {
		allowed[strings.TrimSpace(e)] = true
	}
	return &Notifier{
		senders: senders,
		events:  allowed,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// Notify sends a notification to all senders if the event type is allowed.
func (n *Notifier) Notify(ctx context.Context, event, title, message string) error {
	if len(n.events) > 0 && !n.events[event] {
		n.logger.DebugContext(ctx, "event filtered out",
			slog.String("event", event),
		)
		return nil
	}
	return n.dispatch(ctx, title, message)
}

// dispatch sends to every sender, collecting individual failures so one bad
// channel does not block the rest.
func (n *Notifier) dispatch(ctx context.Context, title, message string) error {
	if len(n.senders) == 0 {
		return nil
	}

	var errs []string
	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		n.logger.DebugContext(ctx, "notification sent",
			slog.String("sender", s.Name()),
			slog.String("title", title),
		)
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}

// FormatOpportunity renders a discovered opportunity for an alert body.
func FormatOpportunity(o domain.Opportunity) string {
	return fmt.Sprintf(
		"%s/%s on %s\nbuy %s @ %.4f, sell %s @ %.4f\nspread %.2f%%, est profit $%.2f (size $%.0f)",
		o.Base, o.Quote, o.Chain,
		o.BuyOn, o.BuyPrice, o.SellOn, o.SellPrice,
		o.DiffPct, o.EstProfitUSD, o.SizeQuote,
	)
}

// FormatExecution renders a recorded execution for an alert body.
func FormatExecution(rec domain.ExecutionRecord) string {
	mode := "live"
	if rec.DryRun {
		mode = "dry-run"
	}
	return fmt.Sprintf(
		"%s/%s %s to %s (%s)\npnl $%.2f, fees $%.2f, gas $%.2f",
		rec.Base, rec.Quote, rec.BuyOn, rec.SellOn, mode,
		rec.PnLUSD, rec.FeesUSD, rec.GasUSD,
	)
}
