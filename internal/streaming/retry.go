package streaming

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy mirrors RetryPolicy::default() from the original source:
// max_retries=3, initial_backoff=100ms, max_backoff=10s, multiplier=2.0,
// with ±10% jitter on every interval.
type RetryPolicy struct {
	MaxRetries     uint64
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:     3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		Multiplier:     2.0,
	}
}

// backoffFor builds a cenkalti/backoff exponential policy from p, bounded to
// at most p.MaxRetries retries (p.MaxRetries+1 attempts in all).
func (p RetryPolicy) backoffFor(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialBackoff
	eb.MaxInterval = p.MaxBackoff
	eb.Multiplier = p.Multiplier
	eb.RandomizationFactor = 0.1
	eb.MaxElapsedTime = 0 // bounded by WithMaxRetries below, not elapsed wall time

	return backoff.WithContext(backoff.WithMaxRetries(eb, p.MaxRetries), ctx)
}

// Do runs operation, retrying on error per p until MaxRetries is exhausted
// or ctx is cancelled, returning the final error if every attempt failed.
func (p RetryPolicy) Do(ctx context.Context, operation func() error) error {
	return backoff.Retry(operation, p.backoffFor(ctx))
}
