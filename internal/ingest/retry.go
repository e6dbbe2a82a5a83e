package ingest

import (
	"context"
	"time"
)

// RetryPolicy drives per-batch retries with exponential backoff.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
}

func DefaultRetryPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  maxAttempts,
		InitialDelay: 500 * time.Millisecond,
		Multiplier:   2,
	}
}

// Wait sleeps the backoff delay for the given zero-based attempt, or
// returns early when the context is cancelled.
func (p RetryPolicy) Wait(ctx context.Context, attempt int) error {
	delay := p.InitialDelay
	for i := 0; i < attempt; i++ {
		delay = time.Duration(float64(delay) * p.Multiplier)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
