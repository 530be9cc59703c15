package librarepo

import (
	"fmt"

	"github.com/utkarsh5026/libra/pkg/common/err"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

const (
	// Package name for error reporting
	pkgName = "librarepo"
)

// NotARepositoryError indicates no control directory was found walking up from Start
type NotARepositoryError struct {
	baseError *err.Error
	Start     string
}

// NewNotARepositoryError creates a new not-a-repository error
func NewNotARepositoryError(start string) error {
	e := err.New(
		pkgName,
		err.CodeNotARepository,
		"locate",
		fmt.Sprintf("fatal: not a libra repository (or any of the parent directories): %s", scpath.ControlDir),
		nil,
	).WithContext("start", start)

	return &NotARepositoryError{baseError: e, Start: start}
}

// Error implements the error interface
func (e *NotARepositoryError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *NotARepositoryError) Unwrap() error {
	return e.baseError
}

// PathConversionError indicates Path cannot be expressed relative to Base
type PathConversionError struct {
	baseError *err.Error
	Path      string
	Base      string
}

// NewPathConversionError creates a new path conversion error
func NewPathConversionError(op, path, base string, cause error) error {
	return &PathConversionError{
		baseError: err.New(
			pkgName,
			err.CodePathConversion,
			op,
			fmt.Sprintf("path %q cannot be made relative to %q", path, base),
			cause,
		),
		Path: path,
		Base: base,
	}
}

// Error implements the error interface
func (e *PathConversionError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *PathConversionError) Unwrap() error {
	return e.baseError
}

// AlreadyExistsError is returned by Initialize when a control directory is already present
type AlreadyExistsError struct {
	baseError *err.Error
	Path      scpath.RepositoryPath
}

// NewAlreadyExistsError creates a new already-exists error
func NewAlreadyExistsError(path scpath.RepositoryPath) error {
	return &AlreadyExistsError{
		baseError: err.New(pkgName, err.CodeAlreadyExists, "init", fmt.Sprintf("already a libra repository: %s", path), nil),
		Path:      path,
	}
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *AlreadyExistsError) Unwrap() error {
	return e.baseError
}

func ioFailure(op string, cause error) error {
	return err.WrapWithCode(cause, pkgName, err.CodeIOFailure, op)
}
