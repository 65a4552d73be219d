package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/qclassify/internal/model"
)

// defaultConfidence applies when the payload omits a confidence value
const defaultConfidence = 0.5

// StripCodeFences removes a surrounding ```json ... ``` or ``` ... ``` block
func StripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	// Drop an info string such as "json" on the opening fence line.
	if i := strings.IndexByte(content, '\n'); i >= 0 && !strings.ContainsAny(content[:i], "{[") {
		content = content[i+1:]
	} else {
		content = strings.TrimPrefix(content, "json")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// ParseVerdict decodes a raw model reply into a Verdict. Any failure is
// reported as *ErrInvalidResponse.
func ParseVerdict(content string) (*Verdict, error) {
	body := StripCodeFences(content)

	var doc any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, &ErrInvalidResponse{Content: content, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := validateVerdict(doc); err != nil {
		return nil, &ErrInvalidResponse{Content: content, Err: err}
	}

	var payload struct {
		Category   string   `json:"category"`
		Confidence *float64 `json:"confidence"`
		Reasoning  string   `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, &ErrInvalidResponse{Content: content, Err: fmt.Errorf("decode verdict: %w", err)}
	}

	category, err := model.ParseCategory(payload.Category)
	if err != nil {
		return nil, &ErrInvalidResponse{Content: content, Err: err}
	}

	confidence := defaultConfidence
	if payload.Confidence != nil {
		confidence = *payload.Confidence
	}

	return &Verdict{
		Category:   category,
		Confidence: model.ClampConfidence(confidence),
		Reasoning:  strings.TrimSpace(payload.Reasoning),
	}, nil
}
