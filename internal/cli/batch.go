package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/qclassify/internal/classify"
	"github.com/ppiankov/qclassify/internal/worker"
)

var (
	concurrency  int
	batchJSON    bool
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Classify questions from a file in parallel",
	Long: `Batch classifies every question in a file concurrently:
- One question per line
- Blank lines and lines starting with '#' are skipped
- Duplicate questions are classified once
- Results are printed in input order

Example:
  qclassify batch questions.txt
  qclassify batch questions.txt --concurrency 8 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers from config)")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "print one JSON result per line")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(commandContext(cmd), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	classifier, err := buildClassifier(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
		fmt.Fprintf(os.Stderr, "Workers:    %d\n", cfg.Concurrency.Workers)
		fmt.Fprintf(os.Stderr, "Timeout:    %v\n\n", batchTimeout)
	}

	processor := worker.NewBatchProcessor(classifier, cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	return printBatch(cmd.OutOrStdout(), classifier, results, batchJSON || cfg.Output.JSON, cfg.Output.Verbose)
}

// printBatch renders batch results in input order. Questions that never ran
// are reported and counted, but do not fail the command.
func printBatch(w io.Writer, classifier *classify.Classifier, results []*worker.ClassifyResult, asJSON, showDetails bool) error {
	failures := 0
	for _, r := range results {
		if asJSON {
			if err := printJSON(w, r.Question, r.Result, r.Error); err != nil {
				return err
			}
			if r.Error != nil {
				failures++
			}
			continue
		}

		fmt.Fprintf(w, "Q: %s\n", r.Question)
		if r.Error != nil {
			failures++
			fmt.Fprintf(w, "Error: %v\n", r.Error)
		} else {
			printResult(w, classifier, r.Question, r.Result, showDetails)
		}
		fmt.Fprintln(w, separator)
	}

	if !asJSON {
		fmt.Fprintf(w, "\nClassified %d of %d questions\n", len(results)-failures, len(results))
	}
	return nil
}
