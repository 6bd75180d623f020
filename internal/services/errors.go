package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// NotFoundError reports a fetch-or-fail miss for a specific entity id.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// UniquenessError reports a duplicate value on a unique column. It is mapped
// from the store's constraint violation; nothing pre-checks uniqueness.
type UniquenessError struct {
	Entity string
	Err    error
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("%s violates a uniqueness constraint: %v", e.Entity, e.Err)
}

func (e *UniquenessError) Unwrap() error {
	return e.Err
}

// TransactionError wraps a failure inside a wrapped write. The transaction it
// occurred in has been rolled back in full, including any steps that had
// already succeeded.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// mapWriteErr classifies a write failure before it is returned to the caller.
func mapWriteErr(entity, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &UniquenessError{Entity: entity, Err: err}
	}
	return &TransactionError{Op: op, Err: err}
}

// mapFindErr turns the store's record-not-found into the named error the
// fetch-or-fail paths promise.
func mapFindErr(entity string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}
