package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRetriable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport error", NewTransportError("dial", errors.New("refused")), true},
		{"empty result", &EmptyResultError{Endpoint: "/exchangeInfo"}, true},
		{"persistence error", &PersistenceError{Op: "save", Err: errors.New("disk full")}, true},
		{"parse error", &ParseError{Field: "symbol", Value: "BTCUSDT", Err: ErrInvalidSymbol}, false},
		{"plain error", errors.New("plain"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetriable(tt.err); got != tt.want {
				t.Errorf("IsRetriable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRetriable_Wrapped(t *testing.T) {
	inner := NewTransportError("read", errors.New("connection reset"))
	wrapped := fmt.Errorf("stream group 3: %w", inner)

	if !IsRetriable(wrapped) {
		t.Error("wrapped transport error should stay retriable")
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := NewTransportError("fetch", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through TransportError")
	}
	if err.Error() != "fetch: timeout" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestParseError_WrapsInvalidSymbol(t *testing.T) {
	_, err := ParseSymbol("not-a-symbol")
	if !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("expected ErrInvalidSymbol, got %v", err)
	}
	if IsRetriable(err) {
		t.Error("symbol parse failures are not retriable")
	}
}
