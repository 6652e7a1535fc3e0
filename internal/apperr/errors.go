// Package apperr holds the error kinds shared by stores, services and handlers.
package apperr

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a lesson, module, assessment or grade does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks malformed input rejected before any work is done.
	ErrValidation = errors.New("validation failed")

	// ErrPersistence marks an I/O failure in the storage layer.
	ErrPersistence = errors.New("persistence failure")

	// ErrDegenerateInput marks input that cannot be graded, such as an empty answer key.
	ErrDegenerateInput = errors.New("degenerate input")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError carries the per-field failures of a rejected payload.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Err: err, Fields: flds}
}

// Invalid is a shorthand for a single-field validation failure.
func Invalid(field, msg string) error {
	return NewValidationError(errors.New(field+": "+msg), FieldError{Field: field, Error: msg})
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return ErrValidation.Error()
	}
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PersistenceError wraps a driver error with the store operation that produced it.
type PersistenceError struct {
	Op  string
	Err error
}

// Persistence wraps err as a PersistenceError. A nil err stays nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: errors.WithStack(err)}
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// NotFound returns ErrNotFound annotated with what was missing.
func NotFound(what string) error {
	return errors.Wrap(ErrNotFound, what)
}
