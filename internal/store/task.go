package store

import (
	"context"
	"database/sql"

	"github.com/mlukashev/task-manager-api/internal/domain"
)

// TaskFilter is an optional-parameter bag for task searches. Nil fields
// impose no constraint; supplied fields are combined with logical AND.
type TaskFilter struct {
	// TitleCont matches tasks whose title contains this substring
	// (case-insensitive).
	TitleCont *string

	// AssigneeID matches tasks assigned to this user.
	AssigneeID *int64

	// StatusSlug matches tasks whose status has this slug.
	StatusSlug *string

	// LabelID matches tasks whose label set contains this label.
	LabelID *int64
}

// IsEmpty reports whether no filter parameter was supplied.
func (f TaskFilter) IsEmpty() bool {
	return f.TitleCont == nil && f.AssigneeID == nil && f.StatusSlug == nil && f.LabelID == nil
}

// TaskStore defines the interface for task persistence, including the
// label join rows owned by each task.
type TaskStore interface {
	// Create saves a new task together with its label references and
	// assigns its ID.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID, including its status slug
	// and label IDs. Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List retrieves all tasks ordered by ID.
	List(ctx context.Context) ([]*domain.Task, error)

	// FindFiltered retrieves the page of tasks matching the filter, ordered
	// by ID, along with the total number of matching tasks.
	FindFiltered(ctx context.Context, filter TaskFilter, limit, offset int) ([]*domain.Task, int64, error)

	// Update modifies an existing task and replaces its label references.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task and its label references by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// ExistsByAssigneeID reports whether any task is assigned to the user.
	ExistsByAssigneeID(ctx context.Context, userID int64) (bool, error)

	// ExistsByStatusID reports whether any task references the status.
	ExistsByStatusID(ctx context.Context, statusID int64) (bool, error)

	// ExistsByLabelID reports whether any task carries the label.
	ExistsByLabelID(ctx context.Context, labelID int64) (bool, error)

	// WithTx returns a new TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
