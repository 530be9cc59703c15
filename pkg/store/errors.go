package store

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/libra/pkg/common/err"
	"github.com/utkarsh5026/libra/pkg/objects"
)

const (
	// Package name for error reporting
	pkgName = "store"
)

// NotFoundError indicates no object is stored under a hash
type NotFoundError struct {
	baseError *err.Error
	Hash      objects.ObjectHash
}

// NewNotFoundError creates a new object not found error
func NewNotFoundError(op string, hash objects.ObjectHash) error {
	return &NotFoundError{
		baseError: err.New(pkgName, err.CodeNotFound, op, fmt.Sprintf("object %s not found", hash), nil),
		Hash:      hash,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *NotFoundError) Unwrap() error {
	return e.baseError
}

// InvalidReferenceError indicates a user-typed prefix matched no stored object
type InvalidReferenceError struct {
	baseError *err.Error
	Prefix    string
}

// NewInvalidReferenceError creates a new invalid reference error
func NewInvalidReferenceError(prefix string) error {
	return &InvalidReferenceError{
		baseError: err.New(pkgName, err.CodeInvalidReference, "resolve", fmt.Sprintf("fatal: invalid reference: %s", prefix), nil),
		Prefix:    prefix,
	}
}

// Error implements the error interface
func (e *InvalidReferenceError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *InvalidReferenceError) Unwrap() error {
	return e.baseError
}

// AmbiguousReferenceError indicates a prefix matched more than one stored object
type AmbiguousReferenceError struct {
	baseError  *err.Error
	Prefix     string
	Candidates []objects.ObjectHash
}

// NewAmbiguousReferenceError creates a new ambiguous reference error
func NewAmbiguousReferenceError(prefix string, candidates []objects.ObjectHash) error {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.String()
	}

	return &AmbiguousReferenceError{
		baseError: err.New(
			pkgName,
			err.CodeAmbiguousReference,
			"resolve",
			fmt.Sprintf("fatal: ambiguous argument: %s (candidates: %s)", prefix, strings.Join(names, ", ")),
			nil,
		),
		Prefix:     prefix,
		Candidates: candidates,
	}
}

// Error implements the error interface
func (e *AmbiguousReferenceError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *AmbiguousReferenceError) Unwrap() error {
	return e.baseError
}

// TypeMismatchError indicates an object exists but has a different kind than required
type TypeMismatchError struct {
	baseError *err.Error
	Ref       string
	Expected  objects.ObjectType
	Actual    objects.ObjectType
}

// NewNotACommitError creates the error returned when a commit-ish resolves to another kind
func NewNotACommitError(ref string, actual objects.ObjectType) error {
	return &TypeMismatchError{
		baseError: err.New(
			pkgName,
			err.CodeTypeMismatch,
			"resolve_commit",
			fmt.Sprintf("fatal: reference is not a commit: %s, is %s", ref, actual),
			nil,
		),
		Ref:      ref,
		Expected: objects.CommitType,
		Actual:   actual,
	}
}

// Error implements the error interface
func (e *TypeMismatchError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *TypeMismatchError) Unwrap() error {
	return e.baseError
}

// invalidInput reports a caller mistake: a bad kind or hash, or an unusable store
func invalidInput(op, msg string, cause error) error {
	return err.New(pkgName, err.CodeInvalidInput, op, msg, cause)
}

// ioFailure wraps a filesystem error with the IO_FAILURE code
func ioFailure(op string, cause error) error {
	return err.WrapWithCode(cause, pkgName, err.CodeIOFailure, op)
}

// corrupt reports an object whose on-disk bytes cannot be decoded
func corrupt(op string, hash objects.ObjectHash, cause error) error {
	return err.New(pkgName, err.CodeIOFailure, op, fmt.Sprintf("object %s is corrupt", hash), cause)
}
