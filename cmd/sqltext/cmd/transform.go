package cmd

import (
	"fmt"

	"analytics-core/sqltext"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [FILE]",
		Short: "Collapse whitespace and strip code fences, triple quotes and semicolons",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return writeOutput(cmd, sqltext.CleanGenerationResult(input))
		},
	}
}

func newRemoveLimitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-limit [FILE]",
		Short: "Remove a trailing LIMIT <n> clause",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return writeOutput(cmd, sqltext.RemoveLimitStatement(input))
		},
	}
}

func newAddQuotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-quotes [FILE]",
		Short: "Replace backtick identifier quotes with double quotes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			quoted, errMsg := sqltext.AddQuotes(input)
			if errMsg != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), errMsg)
			}
			return writeOutput(cmd, quoted)
		},
	}
}

func newSanitizeCmd() *cobra.Command {
	var opts sqltext.Options

	cmd := &cobra.Command{
		Use:   "sanitize [FILE]",
		Short: "Run the full post-processing pipeline on model output",
		Long: `sanitize cleans model output and optionally extracts the fenced SQL
block first, removes a trailing LIMIT clause and converts backtick quotes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			res := sqltext.Sanitize(input, opts)
			loggerFrom(cmd).Debug("Sanitized input",
				zap.Bool("extracted", res.Extracted),
				zap.Int("output_length", len(res.SQL)))

			if res.Error != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), res.Error)
			}
			return writeOutput(cmd, res.SQL)
		},
	}

	cmd.Flags().BoolVar(&opts.ExtractCodeBlock, "extract", false, "use the fenced SQL block when the input contains one")
	cmd.Flags().BoolVar(&opts.RemoveLimit, "remove-limit", false, "remove a trailing LIMIT clause")
	cmd.Flags().BoolVar(&opts.AddQuotes, "quote", false, "replace backtick quotes with double quotes")
	return cmd
}
