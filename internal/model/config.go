package model

import "time"

// Config is the complete qclassify configuration
type Config struct {
	LLM          LLMConfig          `yaml:"llm"`
	Cache        CacheConfig        `yaml:"cache"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	Output       OutputConfig       `yaml:"output"`
}

// LLMConfig configures the optional AI classification adapter
type LLMConfig struct {
	Provider   string `yaml:"provider"`             // gemini, openai, openrouter, anthropic, ollama, "" (disabled)
	Model      string `yaml:"model,omitempty"`      // Provider-specific model name
	APIKey     string `yaml:"api_key,omitempty"`    // Prefer environment variables
	BaseURL    string `yaml:"base_url,omitempty"`   // Custom endpoint (Ollama, proxies)
	Timeout    int    `yaml:"timeout"`              // Seconds per adapter call
	MaxTokens  int    `yaml:"max_tokens"`           // Response token limit
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// CacheConfig configures the adapter verdict cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir,omitempty"` // Empty keeps the cache in memory only
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// RateLimitingConfig bounds adapter request rate per provider
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`

	// Providers overrides the default rate for individual providers, keyed by name
	Providers map[string]ProviderRateLimit `yaml:"providers,omitempty"`
}

// ProviderRateLimit is a per-provider rate override
type ProviderRateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ConcurrencyConfig configures batch classification
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls console rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	JSON    bool `yaml:"json"`
}

// DefaultConfig returns defaults with the adapter disabled
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 256,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}
