package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Log verbosity for commonlog: warnings by default, info with --verbose.
const (
	quietVerbosity   = 0
	verboseVerbosity = 2
)

// NewRootCommand creates the root command for the bct CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bct",
		Short: "bct - object program to Boogie translator",
		Long: `Translate assembly descriptions into Boogie programs for verification.

Each class method becomes a procedure with an implementation, fields become
global maps and delegate types get a dispatch procedure over their targets.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func configureLogging(verbose bool) {
	verbosity := quietVerbosity
	if verbose {
		verbosity = verboseVerbosity
	}
	commonlog.Configure(verbosity, nil)
}
