package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseSymbol_RoundTrip(t *testing.T) {
	symbols := []string{
		"ETH-250301-2200-C",
		"BTC-251226-98000-P",
		"ETH-250314-2900-C",
		"BTC-250627-0.5-C", // fractional strike stays opaque text
	}

	for _, raw := range symbols {
		sym, err := ParseSymbol(raw)
		if err != nil {
			t.Fatalf("ParseSymbol(%q) failed: %v", raw, err)
		}
		if sym.String() != raw {
			t.Errorf("round trip mismatch: got %q, want %q", sym.String(), raw)
		}
	}
}

func TestParseSymbol_Components(t *testing.T) {
	sym, err := ParseSymbol("ETH-250301-2200-C")
	if err != nil {
		t.Fatalf("ParseSymbol failed: %v", err)
	}
	if sym.Underlying != "ETH" {
		t.Errorf("underlying = %q, want ETH", sym.Underlying)
	}
	if sym.Expiration != "250301" {
		t.Errorf("expiration = %q, want 250301", sym.Expiration)
	}
	if sym.Strike != "2200" {
		t.Errorf("strike = %q, want 2200", sym.Strike)
	}
	if sym.Side != "C" {
		t.Errorf("side = %q, want C", sym.Side)
	}
}

func TestParseSymbol_RejectsWrongPartCount(t *testing.T) {
	invalid := []string{
		"",
		"BTCUSDT",
		"ETH-250301",
		"ETH-250301-2200",
		"ETH-250301-2200-C-EXTRA",
		"ETH--2200-C-P-X",
	}

	for _, raw := range invalid {
		if _, err := ParseSymbol(raw); err == nil {
			t.Errorf("ParseSymbol(%q) should fail", raw)
		} else if !errors.Is(err, ErrInvalidSymbol) {
			t.Errorf("ParseSymbol(%q) error should wrap ErrInvalidSymbol, got %v", raw, err)
		}
	}
}

func TestExpiryCutoff(t *testing.T) {
	sym := OptionSymbol{Underlying: "ETH", Expiration: "250301", Strike: "2200", Side: "C"}
	cutoff, err := sym.ExpiryCutoff()
	if err != nil {
		t.Fatalf("ExpiryCutoff failed: %v", err)
	}

	want := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	if !cutoff.Equal(want) {
		t.Errorf("cutoff = %v, want %v", cutoff, want)
	}
}

func TestExpiryCutoff_BadDate(t *testing.T) {
	sym := OptionSymbol{Underlying: "ETH", Expiration: "notadate", Strike: "2200", Side: "C"}
	if _, err := sym.ExpiryCutoff(); err == nil {
		t.Error("expected error for unparsable expiration")
	}

	var pe *ParseError
	_, err := sym.ExpiryCutoff()
	if !errors.As(err, &pe) {
		t.Errorf("expected ParseError, got %T", err)
	}
}

func TestExpired(t *testing.T) {
	cutoff := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	sym := OptionSymbol{Underlying: "ETH", Expiration: "250301", Strike: "2200", Side: "C"}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before cutoff", cutoff.Add(-24 * time.Hour), false},
		{"one second before", cutoff.Add(-time.Second), false},
		{"exactly at cutoff", cutoff, true},
		{"after cutoff", cutoff.Add(time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sym.Expired(tt.now); got != tt.want {
				t.Errorf("Expired(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestExpired_UnparsableCountsAsExpired(t *testing.T) {
	sym := OptionSymbol{Underlying: "ETH", Expiration: "XXYYZZ", Strike: "2200", Side: "C"}
	if !sym.Expired(time.Now()) {
		t.Error("unparsable expiration should count as expired")
	}
}
