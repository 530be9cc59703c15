package meta

import (
	"fmt"

	"github.com/utkarsh5026/libra/pkg/common/err"
)

const pkgName = "meta"

// NotFoundError indicates no row matched a lookup
type NotFoundError struct {
	baseError *err.Error
	Entity    string
	Key       string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(op, entity, key string) error {
	return &NotFoundError{
		baseError: err.New(pkgName, err.CodeNotFound, op, fmt.Sprintf("%s '%s' not found", entity, key), nil),
		Entity:    entity,
		Key:       key,
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

func dbFailure(op string, cause error) error {
	return err.WrapWithCode(cause, pkgName, err.CodeIOFailure, op)
}
