package store

import (
	"context"
	"database/sql"

	"github.com/mlukashev/task-manager-api/internal/domain"
)

// TaskStatusStore defines the interface for task status persistence.
type TaskStatusStore interface {
	// Create saves a new task status and assigns its ID.
	// Returns ErrSlugExists if the slug is already taken.
	Create(ctx context.Context, status *domain.TaskStatus) error

	// GetByID retrieves a task status by its unique ID.
	// Returns ErrTaskStatusNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.TaskStatus, error)

	// GetBySlug retrieves a task status by its unique slug.
	// Returns ErrTaskStatusNotFound if it does not exist.
	GetBySlug(ctx context.Context, slug string) (*domain.TaskStatus, error)

	// List retrieves all task statuses ordered by ID.
	List(ctx context.Context) ([]*domain.TaskStatus, error)

	// Update modifies an existing task status.
	// Returns ErrTaskStatusNotFound if it does not exist and ErrSlugExists
	// if the new slug collides with another status.
	Update(ctx context.Context, status *domain.TaskStatus) error

	// Delete removes a task status by its ID.
	// Returns ErrTaskStatusNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new TaskStatusStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStatusStore
}
