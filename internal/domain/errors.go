package domain

import (
	"errors"
	"strings"
)

var (
	// ErrDuplicateEmail is returned when an employee email is already registered
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrEmployeeNotFound is returned when a referenced employee does not exist
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrTaskNotFound is returned when a task id does not resolve
	ErrTaskNotFound = errors.New("task not found")
)

// ValidationError lists every field-level problem found in a payload
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, ", ")
}

// StoreFailure wraps an error raised by the durable store. Its message is
// never shown to API clients.
type StoreFailure struct {
	Op  string
	Err error
}

// NewStoreFailure wraps err for operation op
func NewStoreFailure(op string, err error) error {
	return &StoreFailure{Op: op, Err: err}
}

func (e *StoreFailure) Error() string {
	return "store failure: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreFailure) Unwrap() error {
	return e.Err
}
