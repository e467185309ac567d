// Package snapshot keeps the latest ranked opportunity set in memory. A
// completed scan replaces the whole snapshot atomically; readers never see a
// half-updated set.
package snapshot

import (
	"sync"
	"time"

	"github.com/chainarb/arbscan/internal/domain"
)

// Store holds the current opportunity snapshot.
type Store struct {
	mu        sync.RWMutex
	opps      []domain.Opportunity
	byID      map[string]domain.Opportunity
	updatedAt time.Time
}

// NewStore returns an empty snapshot store.
func NewStore() *Store {
	return &Store{byID: make(map[string]domain.Opportunity)}
}

// Replace swaps in a freshly ranked opportunity set. Opportunities from the
// previous snapshot become unresolvable.
func (s *Store) Replace(opps []domain.Opportunity) {
	byID := make(map[string]domain.Opportunity, len(opps))
	for _, o := range opps {
		byID[o.ID] = o
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.opps = opps
	s.byID = byID
	s.updatedAt = time.Now().UTC()
}

// List returns the current snapshot in rank order. The returned slice is a
// copy; callers may not mutate stored opportunities.
func (s *Store) List() []domain.Opportunity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Opportunity, len(s.opps))
	copy(out, s.opps)
	return out
}

// Resolve looks up an opportunity by id in the current snapshot only.
// Opportunities from earlier snapshots return ErrStaleOpportunity.
func (s *Store) Resolve(id string) (domain.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.byID[id]
	if !ok {
		return domain.Opportunity{}, domain.ErrStaleOpportunity
	}
	return o, nil
}

// UpdatedAt returns when the snapshot was last replaced. The zero time means
// no scan has completed yet.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Len returns the number of opportunities in the current snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.opps)
}
