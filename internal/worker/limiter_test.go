package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "gemini"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different provider has its own bucket
	if err := limiter.Wait(ctx, "openai"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	ctx, cancel := context.WithCancel(context.Background())

	if err := limiter.Wait(ctx, "gemini"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	cancel()
	if err := limiter.Wait(ctx, "gemini"); err == nil {
		t.Error("expected error waiting with a cancelled context")
	}
}

// blocked reports whether a Wait on key would have to sleep
func blocked(l *Limiter, key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	return l.Wait(ctx, key) != nil
}

func TestLimiter_RateLimit(t *testing.T) {
	// 1 rps, burst 1
	limiter := NewLimiter(1, 1)

	if err := limiter.Wait(context.Background(), "gemini"); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	if !blocked(limiter, "gemini") {
		t.Errorf("expected exhausted bucket to block")
	}

	// Keys are case-insensitive.
	if !blocked(limiter, "  GEMINI ") {
		t.Errorf("expected normalized key to share the exhausted bucket")
	}

	if blocked(limiter, "anthropic") {
		t.Errorf("expected other provider to proceed")
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if blocked(limiter, "ollama") {
			t.Fatalf("expected unlimited limiter to never block (failed at %d)", i)
		}
	}
}

func TestLimiter_SetRate(t *testing.T) {
	limiter := NewLimiter(100, 10) // fast default

	limiter.SetRate("OpenRouter", 0.1, 1) // very slow

	if blocked(limiter, "openrouter") {
		t.Errorf("first request should pass")
	}
	if !blocked(limiter, "openrouter") {
		t.Errorf("second request should block")
	}
	if blocked(limiter, "gemini") {
		t.Errorf("other provider should pass")
	}
}

func TestLimiter_SetRateUnlimited(t *testing.T) {
	limiter := NewLimiter(0.1, 1) // slow default

	limiter.SetRate("ollama", 0, 0)

	for i := 0; i < 20; i++ {
		if blocked(limiter, "ollama") {
			t.Fatalf("expected override to lift the limit (failed at %d)", i)
		}
	}
	if blocked(limiter, "gemini") {
		t.Errorf("first default request should pass")
	}
	if !blocked(limiter, "gemini") {
		t.Errorf("default rate should still apply to other providers")
	}
}
