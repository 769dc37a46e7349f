package domain

import (
	"errors"
	"time"
)

// Common task validation errors
var (
	ErrEmptyTaskTitle = errors.New("task title cannot be empty")
	ErrEmptyTaskStatus = errors.New("task must reference a status")
)

// Task is the central entity of the system. It always references exactly one
// TaskStatus, optionally an assignee (User) and any number of Labels.
//
// StatusID and AssigneeID carry the persisted references; StatusSlug is
// denormalized onto the struct by store reads so the wire format can expose
// the slug without a second lookup.
type Task struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Index      *int      `json:"index"`
	Content    *string   `json:"content"`
	StatusID   int64     `json:"-"`
	StatusSlug string    `json:"status"`
	AssigneeID *int64    `json:"assignee_id"`
	LabelIDs   []int64   `json:"taskLabelIds"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewTask creates a new Task with the given title and status reference.
// Index, content, assignee and labels are optional and set by the caller.
// Returns an error if validation fails.
func NewTask(title string, statusID int64) (*Task, error) {
	task := &Task{
		Title:     title,
		StatusID:  statusID,
		CreatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if t.StatusID == 0 {
		return ErrEmptyTaskStatus
	}
	return nil
}
