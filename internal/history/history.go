// Package history keeps a bounded in-memory log of execution records,
// newest first. It backs the trades API when no durable store is configured
// and stays authoritative for the API even when one is.
package history

import (
	"sync"

	"github.com/chainarb/arbscan/internal/domain"
)

// DefaultCapacity bounds the log when no explicit capacity is given.
const DefaultCapacity = 500

// Log is a fixed-capacity, most-recent-first execution log.
type Log struct {
	mu      sync.RWMutex
	records []domain.ExecutionRecord
	cap     int
}

// NewLog creates a log holding at most capacity records. A non-positive
// capacity falls back to DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{cap: capacity}
}

// Append prepends a record, evicting the oldest when the log is full.
func (l *Log) Append(rec domain.ExecutionRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append([]domain.ExecutionRecord{rec}, l.records...)
	if len(l.records) > l.cap {
		l.records = l.records[:l.cap]
	}
}

// List returns up to limit records, newest first. A non-positive limit
// returns everything.
func (l *Log) List(limit int) []domain.ExecutionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := len(l.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.ExecutionRecord, n)
	copy(out, l.records[:n])
	return out
}

// Len returns the number of stored records.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
