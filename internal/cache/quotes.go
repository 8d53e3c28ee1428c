// Package cache holds the shared in-memory state fed by the stream workers
// and drained by the snapshot scheduler: the latest quote per option symbol
// and the latest trade price per underlying asset pair.
package cache

import (
	"sync"

	"options_go/internal/domain"
)

// QuoteCache maps option symbols to their latest received ticker update.
// At most one entry per symbol exists at any time; a newer update for the
// same symbol silently supersedes the old one, nothing is queued.
type QuoteCache struct {
	mu     sync.RWMutex
	quotes map[string]domain.QuoteUpdate
}

// NewQuoteCache creates an empty quote cache.
func NewQuoteCache() *QuoteCache {
	return &QuoteCache{
		quotes: make(map[string]domain.QuoteUpdate),
	}
}

// Upsert stores the latest update for a symbol, overwriting any prior entry.
func (c *QuoteCache) Upsert(symbol string, quote domain.QuoteUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quotes[symbol] = quote
}

// Get returns the latest update for a symbol, if any.
func (c *QuoteCache) Get(symbol string) (domain.QuoteUpdate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.quotes[symbol]
	return q, ok
}

// Remove deletes a symbol's entry. Removing an absent symbol is a no-op.
func (c *QuoteCache) Remove(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.quotes, symbol)
}

// Len returns the current entry count.
func (c *QuoteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.quotes)
}

// SnapshotCopy returns a point-in-time shallow copy of the cache. Entries
// written after the copy is taken are not observed; individual entries are
// always internally consistent because they are stored by value.
func (c *QuoteCache) SnapshotCopy() map[string]domain.QuoteUpdate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]domain.QuoteUpdate, len(c.quotes))
	for sym, q := range c.quotes {
		out[sym] = q
	}
	return out
}

// Prune removes every symbol for which keep returns false and reports how
// many entries were dropped. The predicate runs under the cache lock, so it
// must not block.
func (c *QuoteCache) Prune(keep func(symbol string) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for sym := range c.quotes {
		if !keep(sym) {
			delete(c.quotes, sym)
			removed++
		}
	}
	return removed
}
