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

// CreateTaskStatusParams is the payload for creating a task status.
type CreateTaskStatusParams struct {
	Name string `json:"name" validate:"required,min=1"`
	Slug string `json:"slug" validate:"required,min=1"`
}

// UpdateTaskStatusParams is the partial-update payload for a task status.
type UpdateTaskStatusParams struct {
	Name optional.Value[string] `json:"name"`
	Slug optional.Value[string] `json:"slug"`
}

// TaskStatusService implements the rules around workflow statuses: slug
// uniqueness conflicts pass through from the store, and deletion is guarded
// against statuses still referenced by tasks.
type TaskStatusService struct {
	statuses store.TaskStatusStore
	tasks    store.TaskStore
	tx       store.TxRunner
	logger   *slog.Logger
}

// NewTaskStatusService creates a new TaskStatusService with the given
// dependencies. If logger is nil, a default logger will be used.
func NewTaskStatusService(
	statuses store.TaskStatusStore,
	tasks store.TaskStore,
	tx store.TxRunner,
	logger *slog.Logger,
) *TaskStatusService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStatusService{
		statuses: statuses,
		tasks:    tasks,
		tx:       tx,
		logger:   logger.With(slog.String("component", "task_status_service")),
	}
}

// List returns all task statuses.
func (s *TaskStatusService) List(ctx context.Context) ([]*domain.TaskStatus, error) {
	return s.statuses.List(ctx)
}

// Get returns the task status with the given ID.
// Returns store.ErrTaskStatusNotFound if the status does not exist.
func (s *TaskStatusService) Get(ctx context.Context, id int64) (*domain.TaskStatus, error) {
	return s.statuses.GetByID(ctx, id)
}

// Create stores a new task status.
// Returns store.ErrSlugExists if the slug is already taken.
func (s *TaskStatusService) Create(ctx context.Context, params CreateTaskStatusParams) (*domain.TaskStatus, error) {
	status, err := domain.NewTaskStatus(params.Name, params.Slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.statuses.Create(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

// Update applies a partial update to a task status.
// Returns store.ErrTaskStatusNotFound if the status does not exist, and
// store.ErrSlugExists when the new slug collides with another status.
func (s *TaskStatusService) Update(ctx context.Context, id int64, params UpdateTaskStatusParams) (*domain.TaskStatus, error) {
	var updated *domain.TaskStatus
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		statuses := s.statuses.WithTx(tx)

		current, err := statuses.GetByID(ctx, id)
		if err != nil {
			return err
		}

		status := *current
		if v, ok := params.Name.Get(); ok {
			status.Name = v
		}
		if v, ok := params.Slug.Get(); ok {
			status.Slug = v
		}
		if err := status.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		if err := statuses.Update(ctx, &status); err != nil {
			return err
		}
		updated = &status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a task status.
// Returns store.ErrTaskStatusNotFound if the status does not exist, and
// ErrStatusInUse when at least one task still carries the status.
func (s *TaskStatusService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		statuses := s.statuses.WithTx(tx)
		tasks := s.tasks.WithTx(tx)

		if _, err := statuses.GetByID(ctx, id); err != nil {
			return err
		}

		inUse, err := tasks.ExistsByStatusID(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return ErrStatusInUse
		}

		return statuses.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Info("task status deleted", slog.Int64("status_id", id))
	return nil
}
