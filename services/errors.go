package services

import (
	"errors"
	"fmt"

	"campsite-backend/repository"
)

// Error kinds. Every error returned by a service wraps exactly one of them,
// so callers can branch with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
)

// Error carries a kind, a message that is safe to show to API clients and,
// for storage failures, the underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Message returns the client-facing message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

func validationError(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func conflictError(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func storageError(message string, err error) error {
	return &Error{Kind: ErrStorage, Message: message, Err: err}
}

// fromRepository classifies a repository error. notFound is the message used
// when the record does not exist.
func fromRepository(err error, notFound string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFoundError("%s", notFound)
	case errors.Is(err, repository.ErrDuplicate):
		return &Error{Kind: ErrConflict, Message: "a record with the same identity already exists", Err: err}
	case errors.Is(err, repository.ErrReferenced):
		return &Error{Kind: ErrConflict, Message: "the record is still referenced by other data", Err: err}
	}
	return storageError("database operation failed", err)
}
