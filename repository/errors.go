package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record is absent or belongs to another
// user. The two cases are deliberately indistinguishable to callers.
var ErrNotFound = errors.New("record not found")

// PersistenceError wraps a storage-layer fault. The triggering request is
// never retried automatically.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
