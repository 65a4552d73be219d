// Package cache stores adapter verdicts so repeated questions skip the model call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from a provider name, model and question
// text. An empty model stands for the provider's default. Surrounding
// whitespace is ignored; question case is significant.
func CacheKey(provider, model, question string) string {
	parts := []string{
		strings.ToLower(provider),
		strings.TrimSpace(model),
		strings.TrimSpace(question),
	}
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "qclassify:v2:" + hex.EncodeToString(hash[:])
}

// New builds the cache described by the arguments: memory-only when dir is
// empty, memory backed by disk otherwise
func New(dir string, memoryTTL, diskTTL time.Duration) Cache {
	if dir == "" {
		return NewMemoryCache(memoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(memoryTTL, dir, diskTTL)
}
