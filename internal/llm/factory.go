package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/qclassify/internal/model"
)

// NewProvider creates a new LLM provider based on configuration.
// An empty provider name means the adapter is disabled: (nil, nil).
func NewProvider(ctx context.Context, config Config) (Provider, error) {
	provider := strings.ToLower(strings.TrimSpace(config.Provider))

	switch provider {
	case "gemini", "google":
		return NewGeminiProvider(ctx, config)

	case "openai":
		return NewOpenAIProvider(config)

	case "openrouter":
		return NewOpenRouterProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: gemini, openai, openrouter, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:   modelConfig.Provider,
		Model:      modelConfig.Model,
		APIKey:     modelConfig.APIKey,
		BaseURL:    modelConfig.BaseURL,
		Timeout:    modelConfig.Timeout,
		MaxTokens:  modelConfig.MaxTokens,
		HTTPProxy:  modelConfig.HTTPProxy,
		HTTPSProxy: modelConfig.HTTPSProxy,
		NoProxy:    modelConfig.NoProxy,
	}
}

// APIKeyEnv returns the environment variable holding the credential for a provider
func APIKeyEnv(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini", "google":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "openrouter":
		return "OPENROUTER_API_KEY"
	case "anthropic", "claude":
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// discoveryOrder lists providers probed by DiscoverConfig, highest priority first
var discoveryOrder = []string{"gemini", "openai", "anthropic", "openrouter"}

// DiscoverConfig probes standard API key environment variables in priority
// order and returns a Config for the first provider whose key is set.
// Returns (DefaultConfig(), false) when none is found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, name := range discoveryOrder {
		if key := os.Getenv(APIKeyEnv(name)); key != "" {
			cfg.Provider = name
			cfg.APIKey = key
			return cfg, true
		}
	}
	return cfg, false
}

// ResolveAPIKey fills a missing API key from the provider's environment variable
func ResolveAPIKey(config Config) Config {
	if config.APIKey != "" {
		return config
	}
	if env := APIKeyEnv(config.Provider); env != "" {
		config.APIKey = os.Getenv(env)
	}
	return config
}
