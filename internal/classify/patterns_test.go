package classify

import (
	"testing"

	"github.com/ppiankov/qclassify/internal/model"
)

func TestPatternClassifier_Rules(t *testing.T) {
	p := NewPatternClassifier(nil)

	tests := []struct {
		question string
		rule     string
		category model.Category
	}{
		{"What is 25 + 17?", "math:arithmetic", model.CategoryMath},
		{"2 ** 10", "math:arithmetic", model.CategoryMath},
		{"3**2", "math:arithmetic", model.CategoryMath},
		{"what is 2 and then 3 * something 4", "math:what-is", model.CategoryMath},
		{"Calculate 15% of 200", "math:keyword", model.CategoryMath},
		{"Please compute my taxes", "math:keyword", model.CategoryMath},
		{"How do I resolve a merge conflict?", "math:keyword", model.CategoryMath},
		{"What is the square root of sixteen?", "math:function", model.CategoryMath},
		{"How far is the distance to the moon?", "math:function", model.CategoryMath},
		{"Is 50% enough?", "math:percentage", model.CategoryMath},
		{"What do you think about pizza?", "opinion:sentiment", model.CategoryOpinion},
		{"Do you LIKE jazz?", "opinion:sentiment", model.CategoryOpinion},
		{"Is pizza better than burgers?", "opinion:judgment", model.CategoryOpinion},
		{"Is this movie good?", "opinion:evaluative", model.CategoryOpinion},
		{"Which phone is betterer?", "opinion:which-better", model.CategoryOpinion},
		{"Give me your honest opinionated view", "opinion:your-opinion", model.CategoryOpinion},
		{"Who was the first president of the United States?", "default", model.CategoryFactual},
		{"What is the capital of France?", "default", model.CategoryFactual},
		{"What is ٢ + ٣", "default", model.CategoryFactual}, // digits are ASCII only
		{"   ", "empty", model.CategoryFactual},
		{"", "empty", model.CategoryFactual},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			m := p.Match(tt.question)
			if m.Rule != tt.rule {
				t.Errorf("Match(%q).Rule = %q, want %q", tt.question, m.Rule, tt.rule)
			}
			if m.Category != tt.category {
				t.Errorf("Match(%q).Category = %q, want %q", tt.question, m.Category, tt.category)
			}
		})
	}
}

func TestPatternClassifier_MathBeforeOpinion(t *testing.T) {
	p := NewPatternClassifier(nil)

	// Contains both "think" and an arithmetic expression
	got := p.Classify("What do you think 6 * 7 is?")
	if got.Category != model.CategoryMath {
		t.Fatalf("expected math, got %s", got.Category)
	}
	if got.Response != "The answer is 42." {
		t.Errorf("unexpected response: %q", got.Response)
	}
}

func TestPatternClassifier_Classify(t *testing.T) {
	p := NewPatternClassifier(nil)

	tests := []struct {
		question   string
		category   model.Category
		confidence float64
		response   string
		source     string
	}{
		{"What is 25 + 17?", model.CategoryMath, MathConfidence, "The answer is 42.", model.SourcePattern},
		{"Calculate 15% of 200", model.CategoryMath, MathConfidence, "15% of 200 is 30.00.", model.SourcePattern},
		{"What is 10 / 0?", model.CategoryMath, MathConfidence, "Error: Division by zero is undefined.", model.SourcePattern},
		{"Please solve this for me", model.CategoryMath, MathConfidence, "I can help with basic math problems. Try asking something like 'What is 15 + 27?' or '30% of 150'.", model.SourcePattern},
		{"What is the capital of France?", model.CategoryFactual, FactualConfidence, PatternFactualResponse, model.SourcePattern},
		{"", model.CategoryFactual, EmptyConfidence, EmptyResponse, model.SourceEmpty},
		{" \t\n ", model.CategoryFactual, EmptyConfidence, EmptyResponse, model.SourceEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got := p.Classify(tt.question)
			if got.Category != tt.category {
				t.Errorf("category = %s, want %s", got.Category, tt.category)
			}
			if got.Confidence != tt.confidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.confidence)
			}
			if got.Response != tt.response {
				t.Errorf("response = %q, want %q", got.Response, tt.response)
			}
			if got.Source != tt.source {
				t.Errorf("source = %q, want %q", got.Source, tt.source)
			}
		})
	}
}

func TestPatternClassifier_OpinionResponse(t *testing.T) {
	p := NewPatternClassifier(nil)
	question := "Is pizza better than burgers?"

	first := p.Classify(question)
	if first.Category != model.CategoryOpinion || first.Confidence != OpinionConfidence {
		t.Fatalf("unexpected result: %+v", first)
	}

	found := false
	for _, r := range OpinionResponses {
		if r == first.Response {
			found = true
		}
	}
	if !found {
		t.Errorf("response %q is not a known opinion response", first.Response)
	}

	for i := 0; i < 5; i++ {
		if again := p.Classify(question); again.Response != first.Response {
			t.Fatalf("opinion response changed between calls: %q vs %q", first.Response, again.Response)
		}
	}
}

func TestOpinionIndex_Distribution(t *testing.T) {
	seen := make(map[int]bool)
	for _, q := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		idx := opinionIndex(q)
		if idx < 0 || idx >= len(OpinionResponses) {
			t.Fatalf("index %d out of range", idx)
		}
		seen[idx] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected questions to spread over responses, got %v", seen)
	}
}

func TestPatternClassifier_Scenarios(t *testing.T) {
	p := NewPatternClassifier(nil)

	tests := []struct {
		question string
		category model.Category
		response string
	}{
		{"I think 2 + 2 is beautiful", model.CategoryMath, "The answer is 4."},
		{"5 / 0", model.CategoryMath, "Error: Division by zero is undefined."},
		{"2 ** 10", model.CategoryMath, "The answer is 1024."},
		{"What do you think about climate change?", model.CategoryOpinion, ""},
		{"Which programming language is better?", model.CategoryOpinion, ""},
		{"How tall is the Eiffel Tower?", model.CategoryFactual, PatternFactualResponse},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			first := p.Classify(tt.question)
			if first.Category != tt.category {
				t.Fatalf("category = %s, want %s", first.Category, tt.category)
			}
			if tt.response != "" && first.Response != tt.response {
				t.Errorf("response = %q, want %q", first.Response, tt.response)
			}
			if again := p.Classify(tt.question); again != first {
				t.Errorf("classification not stable: %+v vs %+v", first, again)
			}
		})
	}
}
