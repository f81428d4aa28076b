// Package errors provides a lightweight structured error type (SpabuildError)
// for category-based classification and exit-code mapping in the CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a spabuild error for classification
type ErrorCategory string

const (
	// User-facing input and configuration errors
	CategoryInput  ErrorCategory = "input"
	CategoryConfig ErrorCategory = "config"

	// Cache state problems. Recovered locally and never surfaced to the user.
	CategoryCache ErrorCategory = "cache"

	// Build and filesystem errors
	CategoryBuild      ErrorCategory = "build"
	CategoryFileSystem ErrorCategory = "filesystem"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// SpabuildError is a structured error with category, severity and context
type SpabuildError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for SpabuildError
type ContextFields map[string]any

// Error implements the error interface
func (e *SpabuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *SpabuildError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *SpabuildError) WithContext(key string, value any) *SpabuildError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new SpabuildError
func New(category ErrorCategory, severity ErrorSeverity, message string) *SpabuildError {
	return &SpabuildError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new SpabuildError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *SpabuildError {
	return &SpabuildError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the first SpabuildError in err's chain.
func As(err error) (*SpabuildError, bool) {
	var sbe *SpabuildError
	if stdErrors.As(err, &sbe) {
		return sbe, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if sbe, ok := As(err); ok {
		return sbe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a SpabuildError
func GetCategory(err error) ErrorCategory {
	if sbe, ok := As(err); ok {
		return sbe.Category
	}
	return CategoryInternal
}
