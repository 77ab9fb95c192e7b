package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/roach88/bct/internal/loader"
	"github.com/roach88/bct/internal/pipeline"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Translation or scenario failure (unsupported feature, failed scenarios)
	ExitCommandError = 2 // Command error (unreadable input, malformed description, bad flags)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitCommandError for errors that are not
// an ExitError, which are flag and argument problems reported by cobra.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// translationExitCode maps a pipeline error to an exit code: descriptions
// that cannot be loaded are command errors, everything else is a failed
// translation.
func translationExitCode(err error) int {
	if pipeline.IsLoadError(err) {
		return ExitCommandError
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for diagnostics in text mode (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E005", "ABSTRACT_METHOD", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// ErrorDetails locates a load error in the assembly description.
type ErrorDetails struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	successLabel = color.New(color.FgGreen).SprintFunc()
	dim          = color.New(color.Faint).SprintFunc()
	bold         = color.New(color.Bold).SprintFunc()
)

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error: error[CODE]: message
	w := f.GetErrWriter()
	fmt.Fprintf(w, "%s[%s]: %s\n", errorLabel("error"), code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(w, "Details: %v\n", details)
	}
	return nil
}

// Check prints a success line in text mode.
func (f *OutputFormatter) Check(format string, args ...interface{}) {
	fmt.Fprintf(f.Writer, "%s %s\n", successLabel("\u2713"), fmt.Sprintf(format, args...))
}

// TranslationError reports a pipeline failure. In text mode, load errors
// with a known position are followed by an excerpt of the description.
func (f *OutputFormatter) TranslationError(err error) error {
	code := pipeline.ErrorCode(err)

	var le *loader.LoadError
	if !errors.As(err, &le) || !le.Pos.IsValid() {
		return f.Error(code, pipeline.Describe(err), nil)
	}

	if f.Format == "json" {
		return f.Error(code, le.Message, ErrorDetails{File: le.Pos.File, Line: le.Pos.Line, Column: le.Pos.Column})
	}
	if err := f.Error(code, le.Message, nil); err != nil {
		return err
	}
	source, readErr := os.ReadFile(le.Pos.File)
	if readErr != nil {
		fmt.Fprintf(f.GetErrWriter(), "  %s %s\n", dim("-->"), le.Pos)
		return nil
	}
	writeExcerpt(f.GetErrWriter(), le.Pos, string(source))
	return nil
}

// writeExcerpt renders the line at pos with a caret under its column:
//
//	 --> a.yaml:5:9
//	  |
//	5 |       - {name: X, kind: record}
//	  |         ^
func writeExcerpt(w io.Writer, pos loader.Position, source string) {
	lines := strings.Split(source, "\n")
	width := len(fmt.Sprint(pos.Line))
	indent := strings.Repeat(" ", width)

	fmt.Fprintf(w, "%s %s %s\n", indent, dim("-->"), pos)
	if pos.Line > len(lines) {
		return
	}
	fmt.Fprintf(w, "%s %s\n", indent, dim("|"))
	fmt.Fprintf(w, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, pos.Line)), dim("|"), lines[pos.Line-1])
	if pos.Column > 0 {
		fmt.Fprintf(w, "%s %s %s%s\n", indent, dim("|"), strings.Repeat(" ", pos.Column-1), errorLabel("^"))
	}
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

func newFormatter(opts *RootOptions, stdout, stderr io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    stdout,
		ErrWriter: stderr, // Diagnostics go to stderr to avoid corrupting output
		Verbose:   opts.Verbose,
	}
}
