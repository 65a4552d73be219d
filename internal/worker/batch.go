package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/qclassify/internal/model"
)

// Classifier defines the interface for classifying a single question
type Classifier interface {
	Classify(ctx context.Context, question string) model.ClassificationResult
}

// ClassifyJob represents a single question classification job
type ClassifyJob struct {
	Index      int
	Question   string
	Classifier Classifier
}

// Execute executes the classification job
func (j *ClassifyJob) Execute(ctx context.Context) Result {
	return &ClassifyResult{
		Index:    j.Index,
		Question: j.Question,
		Result:   j.Classifier.Classify(ctx, j.Question),
	}
}

// ClassifyResult represents the result of a classification job
type ClassifyResult struct {
	Index    int
	Question string
	Result   model.ClassificationResult
	Error    error // Set only when the job never ran
}

// GetError returns the error from the classification result
func (r *ClassifyResult) GetError() error {
	return r.Error
}

// BatchProcessor classifies multiple questions concurrently
type BatchProcessor struct {
	classifier  Classifier
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(classifier Classifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		classifier:  classifier,
		concurrency: concurrency,
	}
}

// ProcessQuestions classifies questions concurrently and returns results in input order.
// Questions that could not be scheduled because ctx ended carry the context error.
func (b *BatchProcessor) ProcessQuestions(ctx context.Context, questions []string) []*ClassifyResult {
	if len(questions) == 0 {
		return []*ClassifyResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	out := make([]*ClassifyResult, len(questions))
	for i, q := range questions {
		job := &ClassifyJob{
			Index:      i,
			Question:   q,
			Classifier: b.classifier,
		}
		if !pool.Submit(job) {
			// ctx ended: drop queued jobs instead of draining them.
			pool.Shutdown()
			break
		}
	}

	for _, result := range pool.Wait() {
		r := result.(*ClassifyResult)
		out[r.Index] = r
	}

	// Unsubmitted jobs and jobs dropped by a cancelled worker leave gaps.
	for i, r := range out {
		if r == nil {
			out[i] = &ClassifyResult{Index: i, Question: questions[i], Error: skippedError(ctx)}
		}
	}

	return out
}

// ProcessFile reads questions from a file and classifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ClassifyResult, error) {
	questions, err := ReadQuestionsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	return b.ProcessQuestions(ctx, questions), nil
}

// ReadQuestionsFromFile reads questions from a file (one per line).
// Blank lines and lines starting with '#' are skipped; duplicates are dropped.
func ReadQuestionsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var questions []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			questions = append(questions, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return questions, nil
}

func skippedError(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("not classified: %w", err)
	}
	return fmt.Errorf("not classified")
}
