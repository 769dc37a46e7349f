package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/optional"
	"github.com/mlukashev/task-manager-api/internal/platform/logger"
	"github.com/mlukashev/task-manager-api/internal/store"
)

// CreateLabelParams is the payload for creating a label.
type CreateLabelParams struct {
	Name string `json:"name" validate:"required,min=3,max=1000"`
}

// UpdateLabelParams is the partial-update payload for a label.
type UpdateLabelParams struct {
	Name optional.Value[string] `json:"name"`
}

// LabelService implements the rules around labels: name uniqueness conflicts
// pass through from the store, and deletion is guarded against labels still
// attached to tasks.
type LabelService struct {
	labels store.LabelStore
	tasks  store.TaskStore
	tx     store.TxRunner
	logger *slog.Logger
}

// NewLabelService creates a new LabelService with the given dependencies.
// If logger is nil, a default logger will be used.
func NewLabelService(
	labels store.LabelStore,
	tasks store.TaskStore,
	tx store.TxRunner,
	logger *slog.Logger,
) *LabelService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LabelService{
		labels: labels,
		tasks:  tasks,
		tx:     tx,
		logger: logger.With(slog.String("component", "label_service")),
	}
}

// List returns all labels.
func (s *LabelService) List(ctx context.Context) ([]*domain.Label, error) {
	return s.labels.List(ctx)
}

// Get returns the label with the given ID.
// Returns store.ErrLabelNotFound if the label does not exist.
func (s *LabelService) Get(ctx context.Context, id int64) (*domain.Label, error) {
	return s.labels.GetByID(ctx, id)
}

// Create stores a new label.
// Returns store.ErrLabelNameExists if the name is already taken.
func (s *LabelService) Create(ctx context.Context, params CreateLabelParams) (*domain.Label, error) {
	label, err := domain.NewLabel(params.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.labels.Create(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

// Update applies a partial update to a label.
// Returns store.ErrLabelNotFound if the label does not exist, and
// store.ErrLabelNameExists when the new name collides with another label.
func (s *LabelService) Update(ctx context.Context, id int64, params UpdateLabelParams) (*domain.Label, error) {
	var updated *domain.Label
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		labels := s.labels.WithTx(tx)

		current, err := labels.GetByID(ctx, id)
		if err != nil {
			return err
		}

		label := *current
		if v, ok := params.Name.Get(); ok {
			label.Name = v
		}
		if err := label.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		if err := labels.Update(ctx, &label); err != nil {
			return err
		}
		updated = &label
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a label.
// Returns store.ErrLabelNotFound if the label does not exist, and
// ErrLabelInUse when the label is still attached to at least one task.
func (s *LabelService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		labels := s.labels.WithTx(tx)
		tasks := s.tasks.WithTx(tx)

		if _, err := labels.GetByID(ctx, id); err != nil {
			return err
		}

		attached, err := tasks.ExistsByLabelID(ctx, id)
		if err != nil {
			return err
		}
		if attached {
			return ErrLabelInUse
		}

		return labels.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Info("label deleted", slog.Int64("label_id", id))
	return nil
}
