package usecase

import (
	"errors"
	"fmt"

	"github.com/nilosmferreira/damasios-ai/internal/domain/validation"
	"github.com/nilosmferreira/damasios-ai/internal/platform/storage"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrForbidden             = errors.New("forbidden")
	ErrDuplicateEmail        = errors.New("email already in use")
	ErrConstraintViolation   = errors.New("constraint violation")
	ErrInvalidTransition     = errors.New("invalid state transition")
	ErrMatchClosed           = errors.New("match already happened")
	ErrDependencyUnavailable = storage.ErrUnavailable
)

// ValidationError reports input problems per field. It matches ErrInvalidInput and, when set,
// the underlying cause (for example ErrDuplicateEmail).
type ValidationError struct {
	Fields validation.Errors
	cause  error
}

func (e *ValidationError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.cause, e.Fields.Error())
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Fields.Error())
}

func (e *ValidationError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrInvalidInput, e.cause}
	}
	return []error{ErrInvalidInput}
}

// Invalid wraps field errors; it returns nil when errs is empty.
func Invalid(errs validation.Errors) error {
	if errs.Empty() {
		return nil
	}
	return &ValidationError{Fields: errs}
}

func InvalidField(field, message string) error {
	errs := validation.Errors{}
	errs.Add(field, message)
	return &ValidationError{Fields: errs}
}

func fieldConflict(cause error, field, message string) error {
	errs := validation.Errors{}
	errs.Add(field, message)
	return &ValidationError{Fields: errs, cause: cause}
}
