package classify

import (
	"hash/fnv"

	"github.com/ppiankov/qclassify/internal/evaluate"
)

// Fixed response texts
const (
	EmptyResponse = "Please ask a question!"

	// PatternFactualResponse answers questions that no pattern rule claimed.
	PatternFactualResponse = "That's an interesting factual question. I'd need to research reliable sources to provide you with accurate information."

	// FactualResponse answers questions an adapter labelled factual.
	FactualResponse = "That's an interesting factual question. For accurate information, I'd recommend checking reliable sources or databases related to your specific topic."
)

// OpinionResponses are the candidate answers for opinion questions, in selection order
var OpinionResponses = [...]string{
	"That's a thoughtful question that really depends on personal values and individual perspectives.",
	"Different people might have varying opinions on this based on their experiences and beliefs.",
	"This is subjective and could have multiple valid viewpoints depending on one's background and preferences.",
	"That's an interesting question where reasonable people might disagree based on their personal experiences.",
}

// Responder produces the final response text for a category
type Responder struct {
	evaluator *evaluate.Evaluator
}

// NewResponder creates a responder backed by the given evaluator
func NewResponder(e *evaluate.Evaluator) *Responder {
	if e == nil {
		e = evaluate.New()
	}
	return &Responder{evaluator: e}
}

// Math evaluates the arithmetic in the original question text
func (r *Responder) Math(question string) string {
	return r.evaluator.Evaluate(question)
}

// Opinion picks one of OpinionResponses by hashing the question text.
// The same text always selects the same response.
func (r *Responder) Opinion(question string) string {
	return OpinionResponses[opinionIndex(question)]
}

// Factual returns the fixed factual response
func (r *Responder) Factual(string) string {
	return FactualResponse
}

// opinionIndex hashes with FNV-1a so the pick is stable across runs too.
func opinionIndex(question string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(question))
	return int(h.Sum32() % uint32(len(OpinionResponses)))
}
