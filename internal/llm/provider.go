package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/qclassify/internal/model"
)

// Provider defines the interface for AI classification adapters
type Provider interface {
	// Name returns the provider name
	Name() string

	// Classify asks the model to label the question. Errors cover transport,
	// service and payload failures; callers are expected to fall back.
	Classify(ctx context.Context, question string) (*Verdict, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Verdict is a parsed and validated adapter classification
type Verdict struct {
	// Category is always one of the recognized categories
	Category model.Category `json:"category"`

	// Confidence as reported by the model, clamped to [0, 1]
	Confidence float64 `json:"confidence"`

	// Reasoning is the model's brief explanation
	Reasoning string `json:"reasoning,omitempty"`

	// Model is the model that produced the verdict
	Model string `json:"model,omitempty"`
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "gemini", "openai", "openrouter", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, test servers)
	BaseURL string

	// Timeout for a single classification call
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 256,
	}
}

// SystemPrompt frames every classification request
const SystemPrompt = "You classify user questions. Reply with a single JSON object and nothing else."

// BuildPrompt constructs the classification prompt for a question
func BuildPrompt(question string) string {
	return fmt.Sprintf(`Classify the following question into exactly one of these categories:
- "factual": Questions about facts, data, definitions, or objective information
- "opinion": Questions asking for subjective views, preferences, or judgments
- "math": Questions involving calculations, mathematical problems, or numerical operations

Question: %q

Respond with a JSON object containing:
- "category": one of ["factual", "opinion", "math"]
- "confidence": a number between 0 and 1
- "reasoning": brief explanation of classification

Example: {"category": "math", "confidence": 0.95, "reasoning": "Contains arithmetic calculation"}`, question)
}
