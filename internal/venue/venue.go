// Package venue defines the quote-source contract shared by every venue
// adapter and a chain-keyed registry for capability lookup. The aggregator
// asks the registry which sources can quote a pair instead of branching on
// venue names.
package venue

import (
	"context"
	"sort"
	"sync"

	"github.com/chainarb/arbscan/internal/domain"
)

// QuoteSource is implemented by every venue adapter. Quote returns the
// current price in quote units per one base unit, or an error; adapters must
// fail rather than return a non-positive price.
type QuoteSource interface {
	// Name returns the venue identifier (e.g. "Binance", "UniswapV2").
	Name() string
	// Kind reports whether the venue is centralized or decentralized.
	Kind() domain.VenueKind
	// Quote fetches a fresh price for the pair. Implementations honour ctx
	// deadlines so one unresponsive venue cannot stall a scan pass.
	Quote(ctx context.Context, pair domain.Pair) (float64, error)
}

// Registry holds quote sources keyed by chain. Global sources (centralized
// exchanges) apply to every chain; chain sources (DEX routers) apply only to
// pairs on their chain.
type Registry struct {
	mu      sync.RWMutex
	global  []QuoteSource
	byChain map[domain.ChainID][]QuoteSource
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byChain: make(map[domain.ChainID][]QuoteSource)}
}

// RegisterGlobal adds a source that can quote pairs on any chain.
func (r *Registry) RegisterGlobal(s QuoteSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.global = append(r.global, s)
}

// RegisterChain adds a source that quotes pairs on one specific chain.
func (r *Registry) RegisterChain(chain domain.ChainID, s QuoteSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byChain[chain] = append(r.byChain[chain], s)
}

// For returns every source eligible for a pair on the given chain: all
// global sources plus the chain's own.
func (r *Registry) For(chain domain.ChainID) []QuoteSource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]QuoteSource, 0, len(r.global)+len(r.byChain[chain]))
	out = append(out, r.global...)
	out = append(out, r.byChain[chain]...)
	return out
}

// Names returns the venue names of every registered source, sorted, for
// status reporting.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	for _, s := range r.global {
		seen[s.Name()] = true
	}
	for _, srcs := range r.byChain {
		for _, s := range srcs {
			seen[s.Name()] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
