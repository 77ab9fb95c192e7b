package loader

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error code constants, shared by every loader entry point.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeReadFailed    = "E002" // File could not be read
	ErrCodeUnknownFormat = "E003" // Unsupported file extension
	ErrCodeParseFailed   = "E004" // CUE or YAML syntax error
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeMissingField  = "E006" // Required field missing
	ErrCodeInvalidType   = "E007" // Unknown type, kind or passing mode
	ErrCodeInvalidValue  = "E008" // Malformed value or duplicate name
)

// Position is a location in an assembly description.
type Position struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the position carries a line.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

func cuePosition(pos token.Pos) Position {
	if !pos.IsValid() {
		return Position{}
	}
	return Position{File: pos.Filename(), Line: pos.Line(), Column: pos.Column()}
}

// LoadError represents an error that occurred while loading an assembly
// description.
type LoadError struct {
	Code    string
	Message string
	Pos     Position
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func loadErrorf(code string, pos Position, format string, args ...any) *LoadError {
	return &LoadError{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) *LoadError {
	// CUE errors may contain multiple errors; report the first.
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: ErrCodeParseFailed, Message: err.Error()}
	}
	first := errs[0]
	le := &LoadError{Code: ErrCodeParseFailed, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		le.Pos = cuePosition(positions[0])
	}
	return le
}
