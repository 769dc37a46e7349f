// Package service implements the business rules of the task manager:
// uniqueness-conflict translation, referential delete guards, password
// hashing, partial-update application, and profile-ownership checks.
package service

import (
	"errors"
	"fmt"

	"github.com/mlukashev/task-manager-api/internal/store"
)

// Common service errors
var (
	// ErrForbidden is returned when the acting principal is not allowed to
	// perform the operation on the target resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotProfileOwner is returned when a user tries to modify or delete
	// a profile other than their own.
	ErrNotProfileOwner = fmt.Errorf("%w: you can only modify your own profile", ErrForbidden)

	// ErrUserHasTasks is returned when deleting a user who is still the
	// assignee of at least one task.
	ErrUserHasTasks = fmt.Errorf("%w: user has assigned tasks", store.ErrInUse)

	// ErrStatusInUse is returned when deleting a task status that is still
	// referenced by at least one task.
	ErrStatusInUse = fmt.Errorf("%w: task status is referenced by tasks", store.ErrInUse)

	// ErrLabelInUse is returned when deleting a label that is still attached
	// to at least one task.
	ErrLabelInUse = fmt.Errorf("%w: label is attached to tasks", store.ErrInUse)
)
