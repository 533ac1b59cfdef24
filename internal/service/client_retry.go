package service

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-geo-sync/internal/adapter"
	"github.com/MKhiriev/go-geo-sync/internal/config"
)

const (
	defaultRetryBase     = 200 * time.Millisecond
	defaultRetryMaxDelay = 10 * time.Second
)

// RetryPolicy retries transient remote failures with capped exponential
// backoff and jitter, at most Attempts times after the first try.
type RetryPolicy struct {
	Base     time.Duration
	MaxDelay time.Duration
	Attempts uint64
}

func NewRetryPolicy(cfg config.ClientSync) RetryPolicy {
	return RetryPolicy{Base: cfg.RetryBase, MaxDelay: cfg.RetryMaxDelay, Attempts: cfg.RetryAttempts}
}

func (p RetryPolicy) backoff() retry.Backoff {
	base, maxDelay := p.Base, p.MaxDelay
	if base <= 0 {
		base = defaultRetryBase
	}
	if maxDelay < base {
		maxDelay = max(base, defaultRetryMaxDelay)
	}

	b := retry.NewExponential(base)
	b = retry.WithJitterPercent(10, b)
	b = retry.WithCappedDuration(maxDelay, b)
	return retry.WithMaxRetries(p.Attempts, b)
}

// do runs fn until it succeeds, fails permanently or the attempts run out.
// Only transport failures and unavailable servers are retried.
func (p RetryPolicy) do(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && adapter.IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
