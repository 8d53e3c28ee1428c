package binance

import (
	"context"
	"fmt"
	"log/slog"

	"options_go/internal/cache"
	"options_go/internal/infra"
)

// ChunkSymbols splits symbols into consecutive groups of at most size,
// preserving order. The final group may be shorter.
func ChunkSymbols(symbols []string, size int) [][]string {
	if size <= 0 || len(symbols) == 0 {
		return nil
	}
	groups := make([][]string, 0, (len(symbols)+size-1)/size)
	for start := 0; start < len(symbols); start += size {
		end := start + size
		if end > len(symbols) {
			end = len(symbols)
		}
		groups = append(groups, symbols[start:end])
	}
	return groups
}

// StreamManager partitions the instrument universe into bounded groups and
// runs one OptionsWorker per group. Each worker owns its own reconnect loop,
// so one group's outage never blocks another's.
type StreamManager struct {
	baseURL   string
	groupSize int
	quotes    *cache.QuoteCache
	retry     infra.RetryPolicy
	workers   []*OptionsWorker
}

// NewStreamManager creates a manager writing into the shared quote cache.
func NewStreamManager(baseURL string, groupSize int, quotes *cache.QuoteCache, retry infra.RetryPolicy) *StreamManager {
	return &StreamManager{
		baseURL:   baseURL,
		groupSize: groupSize,
		quotes:    quotes,
		retry:     retry,
	}
}

// Start splits symbols into groups and connects one worker per group. It
// returns once every worker's loop is running; the workers run until Stop
// or context cancellation.
func (m *StreamManager) Start(ctx context.Context, symbols []string) error {
	groups := ChunkSymbols(symbols, m.groupSize)
	if len(groups) == 0 {
		return fmt.Errorf("no symbols to subscribe")
	}

	slog.Info("subscribing option streams",
		slog.Int("symbols", len(symbols)),
		slog.Int("groups", len(groups)))

	for _, group := range groups {
		w := NewOptionsWorker(m.baseURL, group, m.quotes, m.retry)
		if err := w.Connect(ctx); err != nil {
			return err
		}
		m.workers = append(m.workers, w)
	}
	return nil
}

// Stop disconnects every worker and waits for their loops to exit.
func (m *StreamManager) Stop() {
	for _, w := range m.workers {
		w.Disconnect()
	}
	m.workers = nil
}

// Workers returns the number of running group workers.
func (m *StreamManager) Workers() int {
	return len(m.workers)
}
