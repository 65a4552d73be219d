package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/qclassify/internal/cache"
	"github.com/ppiankov/qclassify/internal/classify"
	"github.com/ppiankov/qclassify/internal/llm"
	"github.com/ppiankov/qclassify/internal/model"
	"github.com/ppiankov/qclassify/internal/worker"
)

// setConfigDefaults registers every config key so environment variables resolve
// even when no config file exists
func setConfigDefaults() {
	d := model.DefaultConfig()

	viper.SetDefault("llm.provider", d.LLM.Provider)
	viper.SetDefault("llm.model", d.LLM.Model)
	viper.SetDefault("llm.api_key", d.LLM.APIKey)
	viper.SetDefault("llm.base_url", d.LLM.BaseURL)
	viper.SetDefault("llm.timeout", d.LLM.Timeout)
	viper.SetDefault("llm.max_tokens", d.LLM.MaxTokens)
	viper.SetDefault("llm.http_proxy", d.LLM.HTTPProxy)
	viper.SetDefault("llm.https_proxy", d.LLM.HTTPSProxy)
	viper.SetDefault("llm.no_proxy", d.LLM.NoProxy)

	viper.SetDefault("cache.enabled", d.Cache.Enabled)
	viper.SetDefault("cache.dir", d.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", d.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", d.Cache.DiskTTL)

	viper.SetDefault("rate_limiting.requests_per_second", d.RateLimiting.RequestsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", d.RateLimiting.BurstSize)

	viper.SetDefault("concurrency.workers", d.Concurrency.Workers)

	viper.SetDefault("output.verbose", d.Output.Verbose)
	viper.SetDefault("output.json", d.Output.JSON)
}

// loadConfig merges defaults, config file, environment and flags
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	cfg.LLM.Provider = viper.GetString("llm.provider")
	cfg.LLM.Model = viper.GetString("llm.model")
	cfg.LLM.APIKey = viper.GetString("llm.api_key")
	cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	cfg.LLM.Timeout = viper.GetInt("llm.timeout")
	cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")
	cfg.LLM.HTTPProxy = viper.GetString("llm.http_proxy")
	cfg.LLM.HTTPSProxy = viper.GetString("llm.https_proxy")
	cfg.LLM.NoProxy = viper.GetString("llm.no_proxy")

	cfg.Cache.Enabled = viper.GetBool("cache.enabled") && !noCache
	cfg.Cache.Dir = viper.GetString("cache.dir")
	cfg.Cache.MemoryTTL = viper.GetDuration("cache.memory_ttl")
	cfg.Cache.DiskTTL = viper.GetDuration("cache.disk_ttl")

	cfg.RateLimiting.RequestsPerSecond = viper.GetFloat64("rate_limiting.requests_per_second")
	cfg.RateLimiting.BurstSize = viper.GetInt("rate_limiting.burst_size")
	if err := viper.UnmarshalKey("rate_limiting.providers", &cfg.RateLimiting.Providers); err != nil {
		logger.Warn("ignoring invalid rate_limiting.providers", zap.Error(err))
		cfg.RateLimiting.Providers = nil
	}

	cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")

	cfg.Output.Verbose = viper.GetBool("output.verbose") || verbose
	cfg.Output.JSON = viper.GetBool("output.json")

	return cfg
}

// resolveLLMConfig picks the adapter settings. An explicit provider gets its
// key from the environment when none is configured; otherwise the first
// provider with an API key in the environment is used. ok is false in
// pattern-only mode.
func resolveLLMConfig(cfg *model.Config) (llm.Config, bool) {
	llmCfg := llm.ConfigFromModel(cfg.LLM)
	if llmCfg.Provider != "" {
		return llm.ResolveAPIKey(llmCfg), true
	}

	discovered, found := llm.DiscoverConfig()
	if !found {
		return llmCfg, false
	}
	llmCfg.Provider = discovered.Provider
	llmCfg.APIKey = discovered.APIKey
	return llmCfg, true
}

// newLimiter builds the adapter rate limiter with per-provider overrides applied
func newLimiter(cfg model.RateLimitingConfig) *worker.Limiter {
	limiter := worker.NewLimiter(cfg.RequestsPerSecond, cfg.BurstSize)
	for name, override := range cfg.Providers {
		limiter.SetRate(name, override.RequestsPerSecond, override.BurstSize)
	}
	return limiter
}

// buildClassifier wires the adapter stack (cache, rate limit, provider) in
// front of the pattern classifier
func buildClassifier(ctx context.Context, cfg *model.Config) (*classify.Classifier, error) {
	opts := []classify.Option{classify.WithLogger(logger)}

	llmCfg, ok := resolveLLMConfig(cfg)
	if !ok {
		logger.Debug("no adapter configured, using pattern classification")
		return classify.New(opts...), nil
	}

	provider, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		return nil, fmt.Errorf("configure %s adapter: %w", llmCfg.Provider, err)
	}
	if provider == nil {
		return classify.New(opts...), nil
	}

	provider = llm.WithRateLimit(provider, newLimiter(cfg.RateLimiting))

	if cfg.Cache.Enabled {
		c := cache.New(cfg.Cache.Dir, cfg.Cache.MemoryTTL, cfg.Cache.DiskTTL)
		provider = llm.WithCache(provider, llmCfg.Model, c, 0)
	}

	logger.Debug("adapter configured",
		zap.String("provider", provider.Name()),
		zap.String("model", llmCfg.Model),
		zap.Bool("cache", cfg.Cache.Enabled))

	return classify.New(append(opts, classify.WithAdapter(provider))...), nil
}

// availabilityTimeout bounds the adapter check run by config show --check
const availabilityTimeout = 10 * time.Second

// adapterStatus describes the configured adapter and whether it answers
func adapterStatus(ctx context.Context, cfg *model.Config) string {
	llmCfg, ok := resolveLLMConfig(cfg)
	if !ok {
		return "none (pattern classification)"
	}

	provider, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		return fmt.Sprintf("%s (misconfigured: %v)", llmCfg.Provider, err)
	}
	if provider == nil {
		return "none (pattern classification)"
	}

	checkCtx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()

	if !provider.IsAvailable(checkCtx) {
		return provider.Name() + " (unavailable, falling back to patterns)"
	}
	return provider.Name() + " (available)"
}
