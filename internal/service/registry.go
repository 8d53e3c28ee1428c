// Package service contains the collector's long-running loops: the universe
// registry with its daily refresh and the periodic snapshot scheduler.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"options_go/internal/cache"
	"options_go/internal/domain"
	"options_go/internal/infra"
)

// Registry holds the current set of tradable option symbols. The set is
// replaced wholesale once per day by the refresh loop.
type Registry struct {
	mu      sync.RWMutex
	ordered []string
	members map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		members: make(map[string]struct{}),
	}
}

// Replace swaps in a new universe, keeping the exchange's order.
func (r *Registry) Replace(symbols []string) {
	members := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		members[s] = struct{}{}
	}

	r.mu.Lock()
	r.ordered = symbols
	r.members = members
	r.mu.Unlock()

	infra.GlobalMetrics.SetUniverseSize(int32(len(symbols)))
}

// Contains reports whether a symbol is in the current universe.
func (r *Registry) Contains(symbol string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[symbol]
	return ok
}

// Symbols returns the ordered universe as a copy.
func (r *Registry) Symbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the universe size.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

// Refresher re-fetches the instrument universe once per day at a fixed
// wall-clock time and prunes the quote cache of symbols that are gone,
// unparsable or expired. A failed refresh leaves the stale universe in use
// until the next scheduled attempt; it is never retried immediately.
type Refresher struct {
	metadata domain.MetadataClient
	registry *Registry
	quotes   *cache.QuoteCache
	at       infra.Clock
}

// NewRefresher wires the daily refresh task.
func NewRefresher(metadata domain.MetadataClient, registry *Registry, quotes *cache.QuoteCache, at infra.Clock) *Refresher {
	return &Refresher{
		metadata: metadata,
		registry: registry,
		quotes:   quotes,
		at:       at,
	}
}

// Run sleeps until the next scheduled time, refreshes, and repeats until the
// context is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	for {
		next := r.at.Next(time.Now())
		slog.Info("universe refresh scheduled", slog.Time("at", next))

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		r.RefreshOnce(ctx)
	}
}

// RefreshOnce fetches the universe, replaces the registry and prunes the
// quote cache. Failures are logged and swallowed.
func (r *Refresher) RefreshOnce(ctx context.Context) {
	symbols, err := r.metadata.FetchUniverse(ctx)
	if err != nil {
		infra.GlobalMetrics.RecordError()
		slog.Error("universe refresh failed", slog.Any("error", err))
		return
	}

	r.registry.Replace(symbols)

	now := time.Now().UTC()
	removed := r.quotes.Prune(func(symbol string) bool {
		if !r.registry.Contains(symbol) {
			return false
		}
		sym, err := domain.ParseSymbol(symbol)
		if err != nil {
			return false
		}
		return !sym.Expired(now)
	})

	slog.Info("universe refreshed",
		slog.Int("symbols", len(symbols)),
		slog.Int("pruned", removed))
}
