package errors

import (
	"fmt"
	"strconv"
)

// Category represents the type of error.
type Category string

const (
	CategoryInternal Category = "internal"
	CategoryCompile  Category = "compile"
	CategoryConfig   Category = "config"
	CategoryServer   Category = "server"
	CategoryCLI      Category = "cli"
)

// Position points at a rune inside a glob pattern.
type Position struct {
	Pattern string
	// Column is 1-based; 0 means the whole pattern.
	Column int
}

// String returns the position as a formatted string.
func (p *Position) String() string {
	if p == nil {
		return ""
	}
	if p.Column > 0 {
		return strconv.Quote(p.Pattern) + ":" + strconv.Itoa(p.Column)
	}
	return strconv.Quote(p.Pattern)
}

// GlobError is a structured error with an optional pattern position and
// suggestions.
type GlobError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (compile, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Position is the pattern location the error refers to.
	Position *Position

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example shows the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *GlobError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *GlobError) Unwrap() error {
	return e.Wrapped
}

// Is matches another GlobError with the same code.
func (e *GlobError) Is(target error) bool {
	t, ok := target.(*GlobError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithPattern records the pattern and the 1-based column the error refers
// to. A column of 0 refers to the whole pattern.
func (e *GlobError) WithPattern(pattern string, column int) *GlobError {
	e.Position = &Position{Pattern: pattern, Column: column}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *GlobError) WithSuggestion(s string) *GlobError {
	e.Suggestion = s
	return e
}

// WithExample adds an example to the error.
func (e *GlobError) WithExample(ex string) *GlobError {
	e.Example = ex
	return e
}

// WithDetail replaces the detailed explanation.
func (e *GlobError) WithDetail(d string) *GlobError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *GlobError) Wrap(err error) *GlobError {
	e.Wrapped = err
	return e
}

// New creates a GlobError from a registered error code.
func New(code string) *GlobError {
	template, ok := registry[code]
	if !ok {
		return &GlobError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &GlobError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new GlobError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *GlobError {
	return &GlobError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a GlobError.
func FromError(err error, code string) *GlobError {
	if err == nil {
		return nil
	}
	if ge, ok := err.(*GlobError); ok {
		return ge
	}
	return New(code).Wrap(err)
}
