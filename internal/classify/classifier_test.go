package classify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ppiankov/qclassify/internal/llm"
	"github.com/ppiankov/qclassify/internal/model"
)

type mockAdapter struct {
	verdict *llm.Verdict
	err     error
	panics  bool

	mu    sync.Mutex
	calls int
}

func (m *mockAdapter) Name() string { return "mock" }

func (m *mockAdapter) Classify(ctx context.Context, question string) (*llm.Verdict, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.panics {
		panic("boom")
	}
	return m.verdict, m.err
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestClassifier_PatternOnly(t *testing.T) {
	c := New()
	assert.Equal(t, "", c.AdapterName())

	got := c.Classify(context.Background(), "What is 25 + 17?")
	assert.Equal(t, model.CategoryMath, got.Category)
	assert.Equal(t, MathConfidence, got.Confidence)
	assert.Equal(t, "The answer is 42.", got.Response)
	assert.Equal(t, model.SourcePattern, got.Source)
}

func TestClassifier_EmptySkipsAdapter(t *testing.T) {
	adapter := &mockAdapter{verdict: &llm.Verdict{Category: model.CategoryMath, Confidence: 0.9}}
	c := New(WithAdapter(adapter))

	for _, q := range []string{"", "   ", "\t\n"} {
		got := c.Classify(context.Background(), q)
		assert.Equal(t, model.CategoryFactual, got.Category)
		assert.Equal(t, 0.0, got.Confidence)
		assert.Equal(t, EmptyResponse, got.Response)
	}
	assert.Equal(t, 0, adapter.calls)
}

func TestClassifier_AdapterVerdict(t *testing.T) {
	tests := []struct {
		name       string
		question   string
		verdict    llm.Verdict
		wantResp   string
		wantConf   float64
		wantReason string
	}{
		{
			name:       "math uses the evaluator",
			question:   "What is 25 + 17?",
			verdict:    llm.Verdict{Category: model.CategoryMath, Confidence: 0.95, Reasoning: "arithmetic"},
			wantResp:   "The answer is 42.",
			wantConf:   0.95,
			wantReason: "arithmetic",
		},
		{
			name:     "math without an expression gets help text",
			question: "How many legs does a spider have?",
			verdict:  llm.Verdict{Category: model.CategoryMath, Confidence: 0.6},
			wantResp: "I can help with basic math problems. Try asking something like 'What is 15 + 27?' or '30% of 150'.",
			wantConf: 0.6,
		},
		{
			name:     "factual overrides a pattern opinion",
			question: "Is pizza better than burgers?",
			verdict:  llm.Verdict{Category: model.CategoryFactual, Confidence: 0.9},
			wantResp: FactualResponse,
			wantConf: 0.9,
		},
		{
			name:     "confidence above one is clamped",
			question: "Who wrote Hamlet?",
			verdict:  llm.Verdict{Category: model.CategoryFactual, Confidence: 1.7},
			wantResp: FactualResponse,
			wantConf: 1.0,
		},
		{
			name:     "negative confidence is clamped",
			question: "Who wrote Hamlet?",
			verdict:  llm.Verdict{Category: model.CategoryFactual, Confidence: -0.3},
			wantResp: FactualResponse,
			wantConf: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := tt.verdict
			c := New(WithAdapter(&mockAdapter{verdict: &verdict}))

			got := c.Classify(context.Background(), tt.question)
			assert.Equal(t, tt.verdict.Category, got.Category)
			assert.Equal(t, tt.wantResp, got.Response)
			assert.InDelta(t, tt.wantConf, got.Confidence, 1e-9)
			assert.Equal(t, "mock", got.Source)
			assert.Equal(t, tt.wantReason, got.Reasoning)
		})
	}
}

func TestClassifier_AdapterOpinion(t *testing.T) {
	question := "Who was the first president of the United States?"
	c := New(WithAdapter(&mockAdapter{verdict: &llm.Verdict{Category: model.CategoryOpinion, Confidence: 0.8}}))

	got := c.Classify(context.Background(), question)
	assert.Equal(t, model.CategoryOpinion, got.Category)
	assert.Equal(t, NewResponder(nil).Opinion(question), got.Response)
	assert.Contains(t, OpinionResponses[:], got.Response)
}

func TestClassifier_Fallback(t *testing.T) {
	question := "Is pizza better than burgers?"
	want := NewPatternClassifier(nil).Classify(question)

	tests := []struct {
		name    string
		adapter *mockAdapter
	}{
		{"transport error", &mockAdapter{err: &llm.ErrProviderUnavailable{Provider: "mock", Err: errors.New("connection refused")}}},
		{"invalid payload", &mockAdapter{err: &llm.ErrInvalidResponse{Content: "not json", Err: errors.New("bad json")}}},
		{"timeout", &mockAdapter{err: context.DeadlineExceeded}},
		{"unknown category", &mockAdapter{verdict: &llm.Verdict{Category: "science", Confidence: 0.9}}},
		{"nil verdict", &mockAdapter{}},
		{"panic", &mockAdapter{panics: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := newObservedLogger()
			c := New(WithAdapter(tt.adapter), WithLogger(logger))

			var got model.ClassificationResult
			require.NotPanics(t, func() {
				got = c.Classify(context.Background(), question)
			})

			assert.Equal(t, want, got)
			assert.Equal(t, 1, tt.adapter.calls)

			warnings := logs.FilterMessage("adapter classification failed").All()
			require.Len(t, warnings, 1)
			assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
			assert.Equal(t, "mock", warnings[0].ContextMap()["provider"])
			assert.NotEmpty(t, warnings[0].ContextMap()["error"])

			assert.Equal(t, 1, logs.FilterMessage("fell back to pattern classification").Len())
		})
	}
}

func TestClassifier_NilLoggerKeepsNop(t *testing.T) {
	c := New(WithLogger(nil), WithAdapter(&mockAdapter{err: errors.New("down")}))
	got := c.Classify(context.Background(), "What is the capital of France?")
	assert.Equal(t, PatternFactualResponse, got.Response)
}

func TestClassifier_Concurrent(t *testing.T) {
	adapter := &mockAdapter{verdict: &llm.Verdict{Category: model.CategoryMath, Confidence: 0.9}}
	c := New(WithAdapter(adapter))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := c.Classify(context.Background(), "2 ** 10")
			assert.Equal(t, "The answer is 1024.", got.Response)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, adapter.calls)
}
