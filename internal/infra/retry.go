package infra

import (
	"context"
	"time"
)

// RetryPolicy decides how long to wait before reconnect attempt n (0-based).
// Stream workers treat every connection failure as transient and consult the
// policy indefinitely; a policy never exhausts.
type RetryPolicy interface {
	Delay(attempt int) time.Duration
}

// FixedDelay waits the same duration before every attempt. This is the
// exchange-facing default: a dropped stream is retried every minute, forever.
type FixedDelay struct {
	Interval time.Duration
}

func (p FixedDelay) Delay(int) time.Duration {
	return p.Interval
}

// Backoff doubles the base delay per attempt up to Max. Kept for endpoints
// that punish tight retry loops harder than the streams do.
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

func (p Backoff) Delay(attempt int) time.Duration {
	d := p.Base
	for i := 0; i < attempt && d < p.Max; i++ {
		d *= 2
	}
	if d > p.Max {
		d = p.Max
	}
	return d
}

// Wait sleeps for the policy's delay or until the context is cancelled.
// Returns false when cancelled.
func Wait(ctx context.Context, policy RetryPolicy, attempt int) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(policy.Delay(attempt)):
		return true
	}
}
