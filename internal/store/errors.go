package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrUserNotFound, ErrTaskNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInUse is returned when a delete is rejected because the entity is
	// still referenced by at least one task.
	ErrInUse = errors.New("entity is in use")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrTaskStatusNotFound indicates that the requested task status does not exist in the store.
	ErrTaskStatusNotFound = fmt.Errorf("%w: task status", ErrNotFound)

	// ErrLabelNotFound indicates that the requested label does not exist in the store.
	ErrLabelNotFound = fmt.Errorf("%w: label", ErrNotFound)

	// ErrTaskNotFound indicates that the requested task does not exist in the store.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrSlugExists indicates that a task status with the given slug already exists.
	ErrSlugExists = fmt.Errorf("%w: slug", ErrDuplicate)

	// ErrLabelNameExists indicates that a label with the given name already exists.
	ErrLabelNameExists = fmt.Errorf("%w: label name", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsInUseError checks if the error is a referential-guard rejection.
func IsInUseError(err error) bool {
	return errors.Is(err, ErrInUse)
}
