package classify

import (
	"regexp"
	"strings"

	"github.com/ppiankov/qclassify/internal/model"
)

// Confidence scores reported by the pattern classifier
const (
	MathConfidence    = 0.8
	OpinionConfidence = 0.7
	FactualConfidence = 0.6
	EmptyConfidence   = 0.0
)

// Rule is a single surface pattern that routes a question to a category
type Rule struct {
	Name     string
	Category model.Category
	Pattern  *regexp.Regexp
}

// Rules are evaluated in order against the case-folded question; the first
// match wins. All math rules precede all opinion rules.
var Rules = []Rule{
	{"math:arithmetic", model.CategoryMath, regexp.MustCompile(`\d+\s*(\*\*|[+\-*/^])\s*\d+`)},
	{"math:what-is", model.CategoryMath, regexp.MustCompile(`what\s+is\s+\d+.*[+\-*/].*\d+`)},
	{"math:keyword", model.CategoryMath, regexp.MustCompile(`calculate|compute|solve`)},
	{"math:function", model.CategoryMath, regexp.MustCompile(`square\s+root|sqrt|logarithm|sin|cos|tan`)},
	{"math:percentage", model.CategoryMath, regexp.MustCompile(`\d+\s*%`)},

	{"opinion:sentiment", model.CategoryOpinion, regexp.MustCompile(`\b(think|believe|opinion|feel|prefer|like|love|hate)\b`)},
	{"opinion:judgment", model.CategoryOpinion, regexp.MustCompile(`\b(should|ought|better|worse|best|worst)\b`)},
	{"opinion:evaluative", model.CategoryOpinion, regexp.MustCompile(`\b(good|bad|beautiful|ugly|amazing|terrible)\b`)},
	{"opinion:what-do-you-think", model.CategoryOpinion, regexp.MustCompile(`what.*do.*you.*think`)},
	{"opinion:which-better", model.CategoryOpinion, regexp.MustCompile(`which.*better`)},
	{"opinion:your-opinion", model.CategoryOpinion, regexp.MustCompile(`your.*opinion`)},
}

// Match describes which rule (if any) decided a pattern classification
type Match struct {
	Rule     string // Rule name, "default", or "empty"
	Category model.Category
}

// PatternClassifier assigns categories with the ordered rule table
type PatternClassifier struct {
	rules     []Rule
	responder *Responder
}

// NewPatternClassifier creates a pattern classifier using the default rule table
func NewPatternClassifier(responder *Responder) *PatternClassifier {
	if responder == nil {
		responder = NewResponder(nil)
	}
	return &PatternClassifier{
		rules:     Rules,
		responder: responder,
	}
}

// Match returns the first rule matching the question
func (p *PatternClassifier) Match(question string) Match {
	normalized := strings.ToLower(strings.TrimSpace(question))
	if normalized == "" {
		return Match{Rule: "empty", Category: model.CategoryFactual}
	}

	for _, rule := range p.rules {
		if rule.Pattern.MatchString(normalized) {
			return Match{Rule: rule.Name, Category: rule.Category}
		}
	}

	return Match{Rule: "default", Category: model.CategoryFactual}
}

// Classify runs the rule table and builds the full result. Math answers
// are computed from the original, non-case-folded text.
func (p *PatternClassifier) Classify(question string) model.ClassificationResult {
	m := p.Match(question)

	switch {
	case m.Rule == "empty":
		return model.ClassificationResult{
			Category:   model.CategoryFactual,
			Confidence: EmptyConfidence,
			Response:   EmptyResponse,
			Source:     model.SourceEmpty,
		}
	case m.Category == model.CategoryMath:
		return model.ClassificationResult{
			Category:   model.CategoryMath,
			Confidence: MathConfidence,
			Response:   p.responder.Math(question),
			Source:     model.SourcePattern,
		}
	case m.Category == model.CategoryOpinion:
		return model.ClassificationResult{
			Category:   model.CategoryOpinion,
			Confidence: OpinionConfidence,
			Response:   p.responder.Opinion(question),
			Source:     model.SourcePattern,
		}
	default:
		return model.ClassificationResult{
			Category:   model.CategoryFactual,
			Confidence: FactualConfidence,
			Response:   PatternFactualResponse,
			Source:     model.SourcePattern,
		}
	}
}
