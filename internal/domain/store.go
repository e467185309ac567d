package domain

import (
	"context"
	"time"
)

// ListOpts provides pagination for list queries.
type ListOpts struct {
	Limit  int
	Offset int
	Since  *time.Time
}

// ExecutionStore persists execution records durably. It mirrors the
// in-memory history log for operators who configure Postgres.
type ExecutionStore interface {
	Insert(ctx context.Context, rec ExecutionRecord) error
	GetByID(ctx context.Context, id string) (ExecutionRecord, error)
	ListRecent(ctx context.Context, limit int) ([]ExecutionRecord, error)
	SumPnL(ctx context.Context, since time.Time) (float64, error)
}

// HistoryLog is the bounded, append-only in-memory execution history.
// Append never fails; List returns records most-recent-first, up to limit
// (non-positive means all).
type HistoryLog interface {
	Append(rec ExecutionRecord)
	List(limit int) []ExecutionRecord
	Len() int
}
