package model

// Result sources other than an adapter provider name
const (
	SourcePattern = "pattern" // Decided by the pattern classifier
	SourceEmpty   = "empty"   // Empty or whitespace-only question
)

// ClassificationResult is the outcome of classifying a single question
type ClassificationResult struct {
	Category   Category `json:"category"`            // factual, opinion, math
	Confidence float64  `json:"confidence"`          // Self-reported certainty in [0, 1]
	Response   string   `json:"response"`            // Canned or computed answer text
	Source     string   `json:"source"`              // "pattern", "empty", or the adapter provider name
	Reasoning  string   `json:"reasoning,omitempty"` // Adapter reasoning, when the adapter decided
}

// ClampConfidence forces a confidence score into [0, 1]. NaN becomes 0.
func ClampConfidence(c float64) float64 {
	switch {
	case c != c:
		return 0
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}
