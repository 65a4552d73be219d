// Package classify assigns questions to a category and produces the
// canned or computed response for it.
package classify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/qclassify/internal/evaluate"
	"github.com/ppiankov/qclassify/internal/llm"
	"github.com/ppiankov/qclassify/internal/model"
)

// Adapter is an external classification service consulted before the
// pattern rules. llm.Provider satisfies it.
type Adapter interface {
	Name() string
	Classify(ctx context.Context, question string) (*llm.Verdict, error)
}

// Classifier combines an optional adapter with the pattern classifier.
// It is safe for concurrent use when the adapter is.
type Classifier struct {
	adapter   Adapter
	patterns  *PatternClassifier
	responder *Responder
	logger    *zap.Logger
}

// Option configures a Classifier
type Option func(*Classifier)

// WithAdapter enables adapter classification. A nil adapter keeps pattern-only mode.
func WithAdapter(a Adapter) Option {
	return func(c *Classifier) {
		c.adapter = a
	}
}

// WithLogger sets the logger used for adapter failures
func WithLogger(logger *zap.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a classifier. Without WithAdapter it runs in pattern-only mode.
func New(opts ...Option) *Classifier {
	responder := NewResponder(evaluate.New())
	c := &Classifier{
		patterns:  NewPatternClassifier(responder),
		responder: responder,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AdapterName returns the configured adapter name, or "" in pattern-only mode
func (c *Classifier) AdapterName() string {
	if c.adapter == nil {
		return ""
	}
	return c.adapter.Name()
}

// Match exposes the pattern rule that would decide the question
func (c *Classifier) Match(question string) Match {
	return c.patterns.Match(question)
}

// Classify labels the question and builds its response. It never fails:
// any adapter problem falls back to the pattern rules for this call.
func (c *Classifier) Classify(ctx context.Context, question string) model.ClassificationResult {
	if strings.TrimSpace(question) == "" {
		return c.patterns.Classify(question)
	}

	if c.adapter == nil {
		return c.patterns.Classify(question)
	}

	verdict, err := c.consult(ctx, question)
	if err != nil {
		c.logger.Warn("adapter classification failed",
			zap.String("provider", c.adapter.Name()),
			zap.Error(err))
		result := c.patterns.Classify(question)
		c.logger.Debug("fell back to pattern classification",
			zap.String("rule", c.patterns.Match(question).Rule),
			zap.String("category", result.Category.String()))
		return result
	}

	return model.ClassificationResult{
		Category:   verdict.Category,
		Confidence: model.ClampConfidence(verdict.Confidence),
		Response:   c.respond(verdict.Category, question),
		Source:     c.adapter.Name(),
		Reasoning:  verdict.Reasoning,
	}
}

// consult calls the adapter, converting panics and unusable verdicts into errors
func (c *Classifier) consult(ctx context.Context, question string) (verdict *llm.Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			verdict = nil
			err = fmt.Errorf("adapter panic: %v", r)
		}
	}()

	verdict, err = c.adapter.Classify(ctx, question)
	if err != nil {
		return nil, err
	}
	if verdict == nil {
		return nil, &llm.ErrInvalidResponse{Err: fmt.Errorf("empty verdict")}
	}
	if !verdict.Category.Valid() {
		return nil, &llm.ErrInvalidResponse{
			Content: string(verdict.Category),
			Err:     fmt.Errorf("%w: %q", model.ErrUnknownCategory, verdict.Category),
		}
	}
	return verdict, nil
}

func (c *Classifier) respond(category model.Category, question string) string {
	switch category {
	case model.CategoryMath:
		return c.responder.Math(question)
	case model.CategoryOpinion:
		return c.responder.Opinion(question)
	default:
		return c.responder.Factual(question)
	}
}
