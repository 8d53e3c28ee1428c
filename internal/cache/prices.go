package cache

import "sync"

// PriceBoard holds the last traded price per reference asset pair
// (e.g. "BTCUSDT" -> "43521.67"). Prices stay opaque decimal text.
type PriceBoard struct {
	mu     sync.RWMutex
	prices map[string]string
}

// NewPriceBoard creates an empty price board.
func NewPriceBoard() *PriceBoard {
	return &PriceBoard{
		prices: make(map[string]string),
	}
}

// Set records the latest trade price for an asset pair.
func (b *PriceBoard) Set(assetPair, price string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prices[assetPair] = price
}

// Get returns the latest price for an asset pair, or the empty string when
// the pair is untracked.
func (b *PriceBoard) Get(assetPair string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.prices[assetPair]
}

// Len returns the number of tracked asset pairs.
func (b *PriceBoard) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.prices)
}
