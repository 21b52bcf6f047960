package service

import (
	"errors"
	"fmt"
	"time"
)

// StorageError wraps any failure of the persistence layer. It is never
// retried; the user re-triggers the action.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage unavailable: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func IsStorageError(err error) bool {
	var serr *StorageError
	return errors.As(err, &serr)
}

// Clock returns the current instant. Services take one so tests can pin time.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
