package infra

import (
	"context"
	"testing"
	"time"
)

func TestFixedDelay(t *testing.T) {
	p := FixedDelay{Interval: time.Minute}

	for _, attempt := range []int{0, 1, 5, 1000} {
		if got := p.Delay(attempt); got != time.Minute {
			t.Errorf("Delay(%d) = %v, want 1m", attempt, got)
		}
	}
}

func TestBackoff(t *testing.T) {
	p := Backoff{Base: time.Second, Max: 8 * time.Second}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{10, 8 * time.Second}, // capped
	}

	for _, tt := range tests {
		if got := p.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestWait_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if Wait(ctx, FixedDelay{Interval: time.Hour}, 0) {
		t.Error("Wait should return false on cancelled context")
	}
}

func TestWait_Elapses(t *testing.T) {
	if !Wait(context.Background(), FixedDelay{Interval: time.Millisecond}, 0) {
		t.Error("Wait should return true after the delay elapses")
	}
}
