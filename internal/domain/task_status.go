package domain

import (
	"errors"
	"time"
)

// Common task status validation errors
var (
	ErrEmptyStatusName = errors.New("task status name cannot be empty")
	ErrEmptyStatusSlug = errors.New("task status slug cannot be empty")
)

// TaskStatus represents a workflow state a task can be in (e.g. "Draft").
// Tasks reference a status by its unique slug on the wire, never by id.
type TaskStatus struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTaskStatus creates a new TaskStatus with the given name and slug.
// Returns an error if validation fails.
func NewTaskStatus(name, slug string) (*TaskStatus, error) {
	ts := &TaskStatus{
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now().UTC(),
	}

	if err := ts.Validate(); err != nil {
		return nil, err
	}

	return ts, nil
}

// Validate checks if the TaskStatus has valid data.
func (ts *TaskStatus) Validate() error {
	if ts.Name == "" {
		return ErrEmptyStatusName
	}
	if ts.Slug == "" {
		return ErrEmptyStatusSlug
	}
	return nil
}
