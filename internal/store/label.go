package store

import (
	"context"
	"database/sql"

	"github.com/mlukashev/task-manager-api/internal/domain"
)

// LabelStore defines the interface for label persistence.
type LabelStore interface {
	// Create saves a new label and assigns its ID.
	// Returns ErrLabelNameExists if the name is already taken.
	Create(ctx context.Context, label *domain.Label) error

	// GetByID retrieves a label by its unique ID.
	// Returns ErrLabelNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Label, error)

	// GetByIDs retrieves the labels whose IDs appear in ids.
	// IDs with no matching label are silently skipped; the result preserves
	// store order, not input order.
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Label, error)

	// List retrieves all labels ordered by ID.
	List(ctx context.Context) ([]*domain.Label, error)

	// Update modifies an existing label.
	// Returns ErrLabelNotFound if it does not exist and ErrLabelNameExists
	// if the new name collides with another label.
	Update(ctx context.Context, label *domain.Label) error

	// Delete removes a label by its ID.
	// Returns ErrLabelNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new LabelStore bound to the provided transaction.
	WithTx(tx *sql.Tx) LabelStore
}
