package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/bct/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	DB    string
	Limit int
}

// RunSummary is one recorded run in command output.
type RunSummary struct {
	ID              string `json:"id"`
	Seq             int64  `json:"seq"`
	Input           string `json:"input"`
	Status          string `json:"status"`
	ErrorCode       string `json:"error_code,omitempty"`
	Message         string `json:"message,omitempty"`
	ProgramHash     string `json:"program_hash,omitempty"`
	Procedures      int    `json:"procedures"`
	Implementations int    `json:"implementations"`
	Cached          bool   `json:"cached"`
}

// RunsResult is the data of the runs command.
type RunsResult struct {
	Runs []RunSummary `json:"runs"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded translation runs",
		Long: `List translation runs recorded with translate --db, newest first.

Examples:
  bct runs --db runs.db
  bct runs --db runs.db --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite database written by translate --db (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list (0 for all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Don't create a database as a side effect of listing.
	if _, err := os.Stat(opts.DB); os.IsNotExist(err) {
		_ = formatter.Error("E_DATABASE", fmt.Sprintf("database not found: %s", opts.DB), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.DB))
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		_ = formatter.Error("E_DATABASE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		_ = formatter.Error("E_DATABASE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	result := RunsResult{Runs: make([]RunSummary, 0, len(runs))}
	for _, r := range runs {
		result.Runs = append(result.Runs, RunSummary{
			ID:              r.ID,
			Seq:             r.Seq,
			Input:           r.Input,
			Status:          r.Status,
			ErrorCode:       r.ErrorCode,
			Message:         r.Message,
			ProgramHash:     r.ProgramHash,
			Procedures:      r.Procedures,
			Implementations: r.Implementations,
			Cached:          r.Cached,
		})
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	if len(result.Runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}
	return writeRunsTable(formatter, result.Runs)
}

func writeRunsTable(formatter *OutputFormatter, runs []RunSummary) error {
	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tSTATUS\tINPUT\tPROCS\tIMPLS\tCACHED\tDETAIL")
	for _, r := range runs {
		detail := shortHash(r.ProgramHash)
		if r.Status == store.StatusError {
			detail = r.ErrorCode
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%v\t%s\n",
			r.Seq, r.Status, r.Input, r.Procedures, r.Implementations, r.Cached, detail)
	}
	return tw.Flush()
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
