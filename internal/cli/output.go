package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/qclassify/internal/classify"
	"github.com/ppiankov/qclassify/internal/model"
)

const separator = "--------------------------------------------------"

// printResult renders a classification for humans
func printResult(w io.Writer, c *classify.Classifier, question string, result model.ClassificationResult, showDetails bool) {
	fmt.Fprintf(w, "Category:   %s\n", strings.ToUpper(result.Category.String()))
	fmt.Fprintf(w, "Confidence: %.2f\n", result.Confidence)
	fmt.Fprintf(w, "Response:   %s\n", result.Response)

	if showDetails {
		fmt.Fprintf(w, "Source:     %s\n", result.Source)
		if result.Source == model.SourcePattern {
			fmt.Fprintf(w, "Rule:       %s\n", c.Match(question).Rule)
		}
		if result.Reasoning != "" {
			fmt.Fprintf(w, "Reasoning:  %s\n", result.Reasoning)
		}
	}
}

// jsonResult is the machine-readable form of a classification
type jsonResult struct {
	Question string `json:"question"`
	model.ClassificationResult
	Error string `json:"error,omitempty"`
}

// printJSON writes one JSON document per line
func printJSON(w io.Writer, question string, result model.ClassificationResult, err error) error {
	out := jsonResult{Question: question, ClassificationResult: result}
	if err != nil {
		out.Error = err.Error()
	}

	data, mErr := json.Marshal(out)
	if mErr != nil {
		return fmt.Errorf("marshal result: %w", mErr)
	}
	_, wErr := fmt.Fprintln(w, string(data))
	return wErr
}
