package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var askJSON bool

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Classify a single question",
	Long: `Classify one question and print its category, confidence and response.

Example:
  qclassify ask "What is 25 + 17?"
  qclassify ask Calculate 15% of 200
  qclassify ask --json "Which programming language is better?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the result as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	cfg := loadConfig()

	classifier, err := buildClassifier(ctx, cfg)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	result := classifier.Classify(ctx, question)

	out := cmd.OutOrStdout()
	if askJSON || cfg.Output.JSON {
		return printJSON(out, question, result, nil)
	}
	printResult(out, classifier, question, result, cfg.Output.Verbose)
	return nil
}
