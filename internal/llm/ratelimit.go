package llm

import (
	"context"
	"fmt"
)

// Waiter blocks until a request for key may proceed
type Waiter interface {
	Wait(ctx context.Context, key string) error
}

// RateLimitedProvider paces calls to the wrapped provider
type RateLimitedProvider struct {
	inner  Provider
	waiter Waiter
}

// WithRateLimit wraps a Provider so each Classify call waits for clearance
// keyed by the provider name
func WithRateLimit(p Provider, w Waiter) Provider {
	return &RateLimitedProvider{inner: p, waiter: w}
}

// Name returns the wrapped provider's name
func (r *RateLimitedProvider) Name() string {
	return r.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (r *RateLimitedProvider) IsAvailable(ctx context.Context) bool {
	return r.inner.IsAvailable(ctx)
}

// Classify waits for rate limit clearance, then delegates
func (r *RateLimitedProvider) Classify(ctx context.Context, question string) (*Verdict, error) {
	if err := r.waiter.Wait(ctx, r.inner.Name()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return r.inner.Classify(ctx, question)
}
