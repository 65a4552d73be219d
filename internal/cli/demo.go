package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// demoQuestions cover each category and both evaluator shapes
var demoQuestions = []string{
	"What is 25 + 17?",
	"What do you think about climate change?",
	"What is the capital of France?",
	"Which programming language is better?",
	"Calculate 15% of 200",
	"How tall is the Eiffel Tower?",
}

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Classify a fixed set of example questions",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	cfg := loadConfig()

	classifier, err := buildClassifier(ctx, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	mode := "pattern matching"
	if name := classifier.AdapterName(); name != "" {
		mode = name + " adapter"
	}
	fmt.Fprintf(out, "Testing with example questions (%s):\n\n", mode)

	for _, q := range demoQuestions {
		result := classifier.Classify(ctx, q)
		fmt.Fprintf(out, "Q: %s\n", q)
		fmt.Fprintf(out, "Category: %s (confidence: %.2f)\n", result.Category, result.Confidence)
		fmt.Fprintf(out, "Response: %s\n", result.Response)
		fmt.Fprintln(out, separator)
	}

	return nil
}
