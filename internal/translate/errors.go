package translate

import (
	"errors"
	"fmt"
)

// UnsupportedFeatureError reports a program shape the translator does not
// handle. It is the only fatal error category the core produces itself.
type UnsupportedFeatureError struct {
	// Code identifies the unsupported shape.
	Code UnsupportedCode

	// Construct names the offending type, method or attribute.
	Construct string

	// Message is a human-readable description.
	Message string
}

// UnsupportedCode categorizes unsupported features.
type UnsupportedCode string

const (
	// ErrCodeAbstractMethod indicates an abstract method was visited.
	ErrCodeAbstractMethod UnsupportedCode = "ABSTRACT_METHOD"

	// ErrCodeUnsupportedType indicates a type that is neither a class nor a delegate.
	ErrCodeUnsupportedType UnsupportedCode = "UNSUPPORTED_TYPE"

	// ErrCodeInvalidAttributeArgument indicates an attribute literal that is
	// not a boolean, 32-bit integer or string.
	ErrCodeInvalidAttributeArgument UnsupportedCode = "INVALID_ATTRIBUTE_ARGUMENT"

	// ErrCodeMissingInvoke indicates a delegate type without an Invoke method.
	ErrCodeMissingInvoke UnsupportedCode = "MISSING_INVOKE"

	// ErrCodeLateDelegateRegistration indicates a target registered against a
	// delegate whose dispatch procedure was already synthesized.
	ErrCodeLateDelegateRegistration UnsupportedCode = "LATE_DELEGATE_REGISTRATION"
)

// Error implements the error interface.
func (e *UnsupportedFeatureError) Error() string {
	if e.Construct != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Construct)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func unsupported(code UnsupportedCode, construct, format string, args ...any) *UnsupportedFeatureError {
	return &UnsupportedFeatureError{
		Code:      code,
		Construct: construct,
		Message:   fmt.Sprintf(format, args...),
	}
}

// IsUnsupported reports whether err is, or wraps, an *UnsupportedFeatureError.
func IsUnsupported(err error) bool {
	var ue *UnsupportedFeatureError
	return errors.As(err, &ue)
}

// CodeOf returns the UnsupportedCode carried by err, if any.
func CodeOf(err error) (UnsupportedCode, bool) {
	var ue *UnsupportedFeatureError
	if errors.As(err, &ue) {
		return ue.Code, true
	}
	return "", false
}
