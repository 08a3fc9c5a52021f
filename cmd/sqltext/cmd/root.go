package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"analytics-core/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCmd builds the sqltext command tree.
func NewRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "sqltext",
		Short: "Post-process SQL text generated by a language model",
		Long: `sqltext applies the same transforms the analytics service runs on
generated SQL: stripping code fences and quote runs, removing a trailing
LIMIT clause, and converting backtick identifiers to double quotes.

Each command reads FILE, or standard input when FILE is omitted or "-",
and writes the result to standard output.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := config.InitLogger(logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			config.Cleanup()
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newCleanCmd(),
		newRemoveLimitCmd(),
		newAddQuotesCmd(),
		newSanitizeCmd(),
	)
	return root
}

// Execute runs the root command against the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// readInput returns the contents of the named file, or of the command's
// standard input when no file (or "-") is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	loggerFrom(cmd).Debug("Read input file", zap.String("file", args[0]), zap.Int("bytes", len(data)))
	return string(data), nil
}

// writeOutput prints text followed by a newline unless it already ends in one.
func writeOutput(cmd *cobra.Command, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(cmd.OutOrStdout(), text)
	return err
}
