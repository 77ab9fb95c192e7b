package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/pipeline"
	"github.com/roach88/bct/internal/store"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Output  string // write the program here instead of stdout
	DB      string // run log and output cache
	NoCache bool   // skip the cache lookup
}

// TranslateResult is the data of a successful translation.
type TranslateResult struct {
	Input           string `json:"input"`
	Procedures      int    `json:"procedures"`
	Implementations int    `json:"implementations"`
	Hash            string `json:"hash"`
	InputHash       string `json:"input_hash"`
	Program         string `json:"program"`
	Cached          bool   `json:"cached"`
	RunID           string `json:"run_id,omitempty"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <assembly-file>",
		Short: "Translate an assembly description to Boogie",
		Long: `Translate an assembly description (.cue, .yaml or .yml) to a Boogie program.

The program is printed to stdout, or written to --output. With --db every
run is recorded and successful outputs are cached by input hash; a later
translation of the same input is served from the cache unless --no-cache
is given.

Exit codes:
  0 - Translation succeeded
  1 - Translation failed (unsupported feature, invalid method body)
  2 - Command error (missing or malformed description, database error)

Examples:
  bct translate counter.cue
  bct translate counter.cue -o counter.bpl
  bct translate counter.yaml --db runs.db
  bct translate counter.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the program to this file")
	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite database for the run log and output cache")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "translate even when a cached output exists")

	return cmd
}

func runTranslate(opts *TranslateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var st *store.Store
	if opts.DB != "" {
		var err error
		st, err = store.Open(opts.DB)
		if err != nil {
			_ = formatter.Error("E_DATABASE", err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
	}

	result, err := translateCached(ctx, st, opts, path, formatter)
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		_ = formatter.Error("E_DATABASE", exitErr.Error(), nil)
		return exitErr
	}
	if err != nil {
		if st != nil {
			if _, recErr := st.RecordRun(ctx, failedRun(path, err)); recErr != nil {
				formatter.VerboseLog("failed to record run: %v", recErr)
			}
		}
		_ = formatter.TranslationError(err)
		return WrapExitError(translationExitCode(err), "translation failed", err)
	}

	if st != nil {
		run, err := st.RecordRun(ctx, store.Run{
			Input:             path,
			InputHash:         result.InputHash,
			Status:            store.StatusOK,
			ProgramHash:       result.Hash,
			Procedures:        result.Procedures,
			Implementations:   result.Implementations,
			Cached:            result.Cached,
			TranslatorVersion: bpl.TranslatorVersion,
			IRVersion:         bpl.IRVersion,
		})
		if err != nil {
			_ = formatter.Error("E_DATABASE", err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		result.RunID = run.ID
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(result.Program), 0644); err != nil {
			_ = formatter.Error("E_OUTPUT", err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	if opts.Output == "" {
		fmt.Fprint(formatter.Writer, result.Program)
		return nil
	}
	formatter.Check("Wrote %s (%d procedures, %d implementations)", opts.Output, result.Procedures, result.Implementations)
	return nil
}

// translateCached serves path from the output cache when possible and
// otherwise translates it, saving the output when a store is open.
func translateCached(ctx context.Context, st *store.Store, opts *TranslateOptions, path string, formatter *OutputFormatter) (*TranslateResult, error) {
	if st != nil && !opts.NoCache {
		// An unreadable file falls through so the loader reports it.
		if src, err := os.ReadFile(path); err == nil {
			key := pipeline.InputKey(path, src)
			cached, ok, err := st.LookupOutput(ctx, key)
			if err != nil {
				return nil, WrapExitError(ExitCommandError, "cache lookup failed", err)
			}
			if ok {
				formatter.VerboseLog("cache hit for %s (%s)", path, key)
				return &TranslateResult{
					Input:           path,
					Procedures:      cached.Procedures,
					Implementations: cached.Implementations,
					Hash:            cached.ProgramHash,
					InputHash:       key,
					Program:         cached.Program,
					Cached:          true,
				}, nil
			}
			formatter.VerboseLog("cache miss for %s", path)
		}
	}

	out, err := pipeline.TranslateFile(path)
	if err != nil {
		return nil, err
	}
	formatter.VerboseLog("translated %s: %d types, %d methods, %d fields, %d delegates",
		path, out.Stats.Types, out.Stats.Methods, out.Stats.Fields, out.Stats.Delegates)

	result := &TranslateResult{
		Input:           path,
		Procedures:      out.Procedures(),
		Implementations: out.Implementations(),
		Hash:            out.Hash,
		InputHash:       out.InputHash,
		Program:         out.Text,
	}
	if st != nil {
		err := st.SaveOutput(ctx, store.Output{
			InputHash:       out.InputHash,
			ProgramHash:     out.Hash,
			Procedures:      result.Procedures,
			Implementations: result.Implementations,
			Program:         out.Text,
		})
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to cache output", err)
		}
	}
	return result, nil
}

// failedRun describes a failed translation for the run log.
func failedRun(path string, err error) store.Run {
	run := store.Run{
		Input:             path,
		Status:            store.StatusError,
		ErrorCode:         pipeline.ErrorCode(err),
		Message:           pipeline.Describe(err),
		TranslatorVersion: bpl.TranslatorVersion,
		IRVersion:         bpl.IRVersion,
	}
	if src, readErr := os.ReadFile(path); readErr == nil {
		run.InputHash = pipeline.InputKey(path, src)
	}
	return run
}
