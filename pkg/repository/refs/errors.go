package refs

import (
	"fmt"

	"github.com/utkarsh5026/libra/pkg/common/err"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

const (
	// Package name for error reporting
	pkgName = "refs"
)

// NotFoundError indicates a reference does not exist
type NotFoundError struct {
	baseError *err.Error
	Ref       scpath.RefPath
}

// NewNotFoundError creates a new reference not found error
func NewNotFoundError(op string, ref scpath.RefPath) error {
	return &NotFoundError{
		baseError: err.New(pkgName, err.CodeNotFound, op, fmt.Sprintf("reference '%s' not found", ref), nil),
		Ref:       ref,
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

// InvalidNameError indicates a reference name that cannot be stored
type InvalidNameError struct {
	baseError *err.Error
	Ref       scpath.RefPath
}

// NewInvalidNameError creates a new invalid reference name error
func NewInvalidNameError(op string, ref scpath.RefPath) error {
	return &InvalidNameError{
		baseError: err.New(pkgName, err.CodeInvalidInput, op, fmt.Sprintf("invalid reference name '%s'", ref), nil),
		Ref:       ref,
	}
}

// Error implements the error interface
func (e *InvalidNameError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *InvalidNameError) Unwrap() error {
	return e.baseError
}
