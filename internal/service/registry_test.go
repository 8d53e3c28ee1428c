package service

import (
	"context"
	"errors"
	"testing"

	"options_go/internal/cache"
	"options_go/internal/domain"
	"options_go/internal/infra"
)

// stubMetadata returns a canned universe or a canned error.
type stubMetadata struct {
	symbols []string
	err     error
	calls   int
}

func (s *stubMetadata) FetchUniverse(context.Context) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.symbols, nil
}

func TestRegistry_ReplaceAndContains(t *testing.T) {
	r := NewRegistry()
	r.Replace([]string{"ETH-250301-2200-C", "BTC-250627-98000-P"})

	if !r.Contains("ETH-250301-2200-C") {
		t.Error("replaced symbol should be present")
	}
	if r.Contains("SOL-250301-150-C") {
		t.Error("foreign symbol should be absent")
	}
	if r.Len() != 2 {
		t.Errorf("len = %d, want 2", r.Len())
	}

	// Wholesale replacement drops the old set.
	r.Replace([]string{"ETH-250301-2200-C"})
	if r.Contains("BTC-250627-98000-P") {
		t.Error("old universe should be gone after Replace")
	}
}

func TestRegistry_SymbolsReturnsOrderedCopy(t *testing.T) {
	r := NewRegistry()
	r.Replace([]string{"B-1-2-C", "A-1-2-C", "C-1-2-C"})

	got := r.Symbols()
	if got[0] != "B-1-2-C" || got[1] != "A-1-2-C" || got[2] != "C-1-2-C" {
		t.Errorf("order not preserved: %v", got)
	}

	got[0] = "MUTATED"
	if r.Symbols()[0] != "B-1-2-C" {
		t.Error("Symbols must return a copy")
	}
}

func TestRefresher_PrunesCache(t *testing.T) {
	kept := futureSymbol("ETH", "2200", "C", 7)
	dropped := futureSymbol("BTC", "98000", "P", 7) // absent from new universe
	expired := pastSymbol("ETH", "2000", "C")       // in universe but past cutoff

	quotes := cache.NewQuoteCache()
	quotes.Upsert(kept, liveQuote(kept, "10.4", "1"))
	quotes.Upsert(dropped, liveQuote(dropped, "500", "1"))
	quotes.Upsert(expired, liveQuote(expired, "10", "1"))
	quotes.Upsert("GARBAGE", liveQuote("GARBAGE", "1", "1")) // unparsable

	registry := NewRegistry()
	registry.Replace([]string{kept, dropped, expired})

	meta := &stubMetadata{symbols: []string{kept, expired, "GARBAGE"}}
	ref := NewRefresher(meta, registry, quotes, infra.Clock{Hour: 8, Minute: 1})

	ref.RefreshOnce(context.Background())

	if !registry.Contains(kept) || registry.Len() != 3 {
		t.Errorf("registry not replaced: len=%d", registry.Len())
	}

	if _, ok := quotes.Get(kept); !ok {
		t.Error("valid unexpired symbol must survive the prune")
	}
	if q, _ := quotes.Get(kept); q.Last != "10.4" {
		t.Error("surviving entry must be retained unchanged")
	}
	if _, ok := quotes.Get(dropped); ok {
		t.Error("symbol absent from the new universe must be pruned")
	}
	if _, ok := quotes.Get(expired); ok {
		t.Error("expired symbol must be pruned even when still listed")
	}
	if _, ok := quotes.Get("GARBAGE"); ok {
		t.Error("unparsable symbol must be pruned")
	}
}

func TestRefresher_FailureKeepsStaleState(t *testing.T) {
	sym := futureSymbol("ETH", "2200", "C", 7)

	quotes := cache.NewQuoteCache()
	quotes.Upsert(sym, liveQuote(sym, "10.4", "1"))

	registry := NewRegistry()
	registry.Replace([]string{sym})

	meta := &stubMetadata{err: domain.NewTransportError("fetch universe", errors.New("timeout"))}
	ref := NewRefresher(meta, registry, quotes, infra.Clock{Hour: 8, Minute: 1})

	ref.RefreshOnce(context.Background())

	if meta.calls != 1 {
		t.Errorf("fetch calls = %d, want exactly 1 (no immediate retry)", meta.calls)
	}
	if registry.Len() != 1 || !registry.Contains(sym) {
		t.Error("stale universe must remain in use after a failed refresh")
	}
	if quotes.Len() != 1 {
		t.Error("cache must not be pruned on a failed refresh")
	}
}

func TestRefresher_EmptyUniverseKeepsStaleState(t *testing.T) {
	sym := futureSymbol("ETH", "2200", "C", 7)

	quotes := cache.NewQuoteCache()
	quotes.Upsert(sym, liveQuote(sym, "10.4", "1"))

	registry := NewRegistry()
	registry.Replace([]string{sym})

	meta := &stubMetadata{err: &domain.EmptyResultError{Endpoint: "/exchangeInfo"}}
	ref := NewRefresher(meta, registry, quotes, infra.Clock{Hour: 8, Minute: 1})

	ref.RefreshOnce(context.Background())

	if registry.Len() != 1 {
		t.Error("empty discovery result must not wipe the universe")
	}
}
