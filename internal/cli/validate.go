package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/bct/internal/pipeline"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid           bool   `json:"valid"`
	Input           string `json:"input"`
	Types           int    `json:"types"`
	Methods         int    `json:"methods"`
	Fields          int    `json:"fields"`
	Delegates       int    `json:"delegates"`
	Procedures      int    `json:"procedures"`
	Implementations int    `json:"implementations"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <assembly-file>",
		Short: "Check that an assembly description translates",
		Long: `Load and translate an assembly description without printing the program.

Reports success with a summary, or the first diagnostic. Nothing is
recorded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	out, err := pipeline.TranslateFile(path)
	if err != nil {
		_ = formatter.TranslationError(err)
		return WrapExitError(translationExitCode(err), "validation failed", err)
	}

	result := ValidationResult{
		Valid:           true,
		Input:           path,
		Types:           out.Stats.Types,
		Methods:         out.Stats.Methods,
		Fields:          out.Stats.Fields,
		Delegates:       out.Stats.Delegates,
		Procedures:      out.Procedures(),
		Implementations: out.Implementations(),
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}

	formatter.Check("%s is valid (%d types, %d methods, %d fields, %d delegates)",
		path, result.Types, result.Methods, result.Fields, result.Delegates)
	return nil
}
