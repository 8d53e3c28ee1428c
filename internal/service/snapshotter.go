package service

import (
	"context"
	"log/slog"
	"time"

	"options_go/internal/cache"
	"options_go/internal/domain"
	"options_go/internal/infra"
)

// Snapshotter periodically drains the quote cache into the persistent store.
// Every pass filters the point-in-time cache copy, joins the underlying
// price and appends the survivors as one indexed batch.
type Snapshotter struct {
	quotes      *cache.QuoteCache
	prices      *cache.PriceBoard
	store       domain.SnapshotStore
	quoteSuffix string
	interval    time.Duration

	// index is the last durably persisted snapshot index. Recovered once at
	// startup via MaxSnapshotIndex and advanced only after a successful
	// write, so recovery can never hand out a duplicate index.
	index uint64
}

// NewSnapshotter recovers the high-water index from the store and returns a
// ready scheduler.
func NewSnapshotter(quotes *cache.QuoteCache, prices *cache.PriceBoard, store domain.SnapshotStore, quoteSuffix string, interval time.Duration) (*Snapshotter, error) {
	index, err := store.MaxSnapshotIndex()
	if err != nil {
		return nil, err
	}
	slog.Info("snapshot index recovered", slog.Uint64("index", index))
	return &Snapshotter{
		quotes:      quotes,
		prices:      prices,
		store:       store,
		quoteSuffix: quoteSuffix,
		interval:    interval,
	}, nil
}

// Index returns the last persisted snapshot index.
func (s *Snapshotter) Index() uint64 {
	return s.index
}

// Run executes one snapshot pass per interval until the context is
// cancelled. It never returns under normal operation.
func (s *Snapshotter) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("snapshot scheduler stopped")
			return
		case <-ticker.C:
			if err := s.TakeSnapshot(); err != nil {
				infra.GlobalMetrics.RecordError()
				slog.Error("snapshot pass failed", slog.Any("error", err))
			}
		}
	}
}

// PassResult summarizes one snapshot pass.
type PassResult struct {
	Index     uint64
	Collected int
	Saved     int
	Dropped   int
}

// TakeSnapshot runs one pass: copy the cache, filter, join, persist.
// The index advances only when at least one row was durably written.
func (s *Snapshotter) TakeSnapshot() error {
	entries := s.quotes.SnapshotCopy()
	now := time.Now().UTC()
	candidate := s.index + 1

	rows := make([]domain.OptionSnapshot, 0, len(entries))
	for raw, quote := range entries {
		sym, err := domain.ParseSymbol(raw)
		if err != nil {
			continue
		}
		cutoff, err := sym.ExpiryCutoff()
		if err != nil || !now.Before(cutoff) {
			continue
		}
		if !quote.Tradable() {
			continue
		}

		underlyingPrice := s.prices.Get(sym.Underlying + s.quoteSuffix)
		rows = append(rows, domain.NewSnapshot(candidate, sym, quote, underlyingPrice))
	}

	result := PassResult{
		Index:     candidate,
		Collected: len(entries),
		Saved:     len(rows),
		Dropped:   len(entries) - len(rows),
	}

	slog.Info("snapshot pass",
		slog.Uint64("index", result.Index),
		slog.Int("collected", result.Collected),
		slog.Int("saved", result.Saved),
		slog.Int("dropped", result.Dropped))

	if len(rows) == 0 {
		// Nothing written, nothing durable: the index stays put so the next
		// non-empty pass reuses the candidate.
		infra.GlobalMetrics.RecordSnapshot(0, result.Dropped)
		return nil
	}

	if err := s.store.SaveSnapshots(rows); err != nil {
		return err
	}
	s.index = candidate
	infra.GlobalMetrics.RecordSnapshot(result.Saved, result.Dropped)
	return nil
}
