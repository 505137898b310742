package scenario

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Fetch when no scenario has the given id.
	ErrNotFound = errors.New("scenario not found")

	// ErrEmptyName is wrapped in a PersistenceError when Create is called
	// without a scenario name.
	ErrEmptyName = errors.New("scenario name is empty")
)

// PersistenceError reports a failure of the underlying storage during the
// named operation. It is never used for ErrNotFound.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("scenario store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
