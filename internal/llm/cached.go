package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/qclassify/internal/cache"
)

// CachedProvider memoizes successful verdicts per provider, model and question
type CachedProvider struct {
	inner Provider
	model string
	cache cache.Cache
	ttl   time.Duration
}

// WithCache wraps a Provider with a verdict cache. model is the configured
// model name ("" for the provider default) and keeps verdicts from
// different models apart. Failures are never cached.
func WithCache(p Provider, model string, c cache.Cache, ttl time.Duration) Provider {
	return &CachedProvider{inner: p, model: model, cache: c, ttl: ttl}
}

// Name returns the wrapped provider's name
func (c *CachedProvider) Name() string {
	return c.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (c *CachedProvider) IsAvailable(ctx context.Context) bool {
	return c.inner.IsAvailable(ctx)
}

// Classify returns a cached verdict when present, otherwise asks the wrapped provider
func (c *CachedProvider) Classify(ctx context.Context, question string) (*Verdict, error) {
	key := cache.CacheKey(c.inner.Name(), c.model, question)

	if data, found := c.cache.Get(key); found {
		var v Verdict
		if err := json.Unmarshal(data, &v); err == nil && v.Category.Valid() {
			return &v, nil
		}
		// Corrupt entry: drop it and ask again.
		_ = c.cache.Delete(key)
	}

	verdict, err := c.inner.Classify(ctx, question)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(verdict); err == nil {
		_ = c.cache.Set(key, data, c.ttl)
	}
	return verdict, nil
}
