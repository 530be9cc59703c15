package err

import (
	"errors"
	"strings"
)

// Error is the base error embedded by every package-specific error type.
type Error struct {
	// Package is the originating package, e.g. "store" or "librarepo"
	Package string
	// Code is one of the Code* constants
	Code string
	// Op names the failing operation: "get", "locate", "to_workdir"
	Op string
	// Message is the human-readable part
	Message string
	// Err is the wrapped cause, nil for leaf errors
	Err error
	// Context holds structured fields, allocated on first WithContext
	Context map[string]any
}

// Error formats as "[package][code]: op: message: cause", omitting empty parts
func (e *Error) Error() string {
	var b strings.Builder
	if e.Package != "" {
		b.WriteString("[" + e.Package + "]")
	}
	if e.Code != "" {
		b.WriteString("[" + e.Code + "]")
	}

	parts := make([]string, 0, 4)
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}
	for _, s := range []string{e.Op, e.Message} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same non-empty code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code != "" && e.Code == t.Code
}

// WithContext records a structured field and returns e for chaining
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// New creates a base error
func New(pkg, code, op, message string, cause error) *Error {
	return &Error{Package: pkg, Code: code, Op: op, Message: message, Err: cause}
}

// WrapWithCode wraps cause with package, code and op. A nil cause stays nil.
func WrapWithCode(cause error, pkg, code, op string) error {
	if cause == nil {
		return nil
	}
	return &Error{Package: pkg, Code: code, Op: op, Err: cause}
}

// IsCode reports whether any *Error in err's chain carries code
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the first *Error in err's chain, or ""
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
