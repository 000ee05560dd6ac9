package domain

import (
	"errors"
	"fmt"
)

// EntityKind names the entity a referential guard failed on.
type EntityKind string

const (
	KindUser    EntityKind = "user"
	KindAccount EntityKind = "account"
	KindPost    EntityKind = "post"
	KindComment EntityKind = "comment"
)

var (
	// ErrNotInitialized means the store file has not been created yet.
	ErrNotInitialized = errors.New("no database found")

	// ErrConflict means a uniqueness rule was violated.
	ErrConflict = errors.New("conflict")
)

// NotFoundError reports a referenced entity that does not exist. Guard
// failures abort the enclosing unit of work before any write lands.
type NotFoundError struct {
	Kind EntityKind
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Kind, e.ID)
}

func NewNotFound(kind EntityKind, id uint) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// StorageError wraps a driver-level failure. It is never produced by guard
// checks and must not be retried silently.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
