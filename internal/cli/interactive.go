package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/qclassify/internal/classify"
)

// interactiveCmd represents the interactive command
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Ask questions one at a time (default)",
	Long: `Start an interactive session. Each line is classified and answered.
Type 'quit', 'exit' or 'q' to leave; end of input also ends the session.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	cfg := loadConfig()

	classifier, err := buildClassifier(ctx, cfg)
	if err != nil {
		return err
	}

	if classifier.AdapterName() == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Tip: set GEMINI_API_KEY (or OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY) for AI-powered classification. Using pattern matching.")
	}

	return interactiveLoop(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), classifier, cfg.Output.Verbose)
}

// isQuit reports whether a line ends the session
func isQuit(line string) bool {
	switch strings.ToLower(line) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

// interactiveLoop classifies lines from in until a quit word, end of input, or ctx ends
func interactiveLoop(ctx context.Context, in io.Reader, out io.Writer, classifier *classify.Classifier, showDetails bool) error {
	fmt.Fprintln(out, "Question Classifier Ready!")
	fmt.Fprintln(out, "Ask me anything, and I'll classify it as factual, opinion, or math.")
	fmt.Fprintln(out, "Type 'quit' to exit.")
	fmt.Fprintln(out)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines, readErr := readLines(readCtx, in)
	for {
		fmt.Fprint(out, "Your question: ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Goodbye!")
				return <-readErr
			}
			line = l
		}

		question := strings.TrimSpace(line)
		if isQuit(question) {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		if question == "" {
			fmt.Fprintln(out, "Please enter a question.")
			fmt.Fprintln(out)
			continue
		}

		result := classifier.Classify(ctx, question)
		fmt.Fprintln(out)
		printResult(out, classifier, question, result, showDetails)
		fmt.Fprintln(out)
		fmt.Fprintln(out, separator)
	}
}

// readLines feeds lines from in until end of input or ctx ends. The error
// channel receives the scanner error once lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}
