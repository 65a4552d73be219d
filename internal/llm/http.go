package llm

import (
	"context"
	"net/http"
	"time"

	"github.com/ppiankov/qclassify/internal/util"
)

// newHTTPClient builds the transport shared by providers that accept a custom client
func newHTTPClient(config Config, defaultTimeout time.Duration) *http.Client {
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
		},
	}
}

// withTimeout bounds a single adapter call
func withTimeout(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	timeout := time.Duration(seconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func maxTokens(n int) int {
	if n <= 0 {
		return 256
	}
	return n
}
