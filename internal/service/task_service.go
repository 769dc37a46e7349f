package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/optional"
	"github.com/mlukashev/task-manager-api/internal/platform/logger"
	"github.com/mlukashev/task-manager-api/internal/store"
)

// CreateTaskParams is the payload for creating a task. Status carries the
// slug of an existing task status; AssigneeID and LabelIDs are resolved
// against their stores before the task is written.
type CreateTaskParams struct {
	Title      string                  `json:"title"  validate:"required,min=1"`
	Status     string                  `json:"status" validate:"required,min=1"`
	Index      optional.Value[int]     `json:"index"`
	Content    optional.Value[string]  `json:"content"`
	AssigneeID optional.Value[int64]   `json:"assignee_id"`
	LabelIDs   optional.Value[[]int64] `json:"taskLabelIds"`
}

// UpdateTaskParams is the partial-update payload for a task. Absent fields
// leave the task unchanged; explicit nulls clear the nullable fields.
type UpdateTaskParams struct {
	Title      optional.Value[string]  `json:"title"`
	Status     optional.Value[string]  `json:"status"`
	Index      optional.Value[int]     `json:"index"`
	Content    optional.Value[string]  `json:"content"`
	AssigneeID optional.Value[int64]   `json:"assignee_id"`
	LabelIDs   optional.Value[[]int64] `json:"taskLabelIds"`
}

// TaskService implements the rules around tasks: status slugs are resolved
// strictly (an unknown slug fails the operation), assignees are resolved
// leniently (an unknown user leaves the task unassigned), and label
// references silently drop IDs that no longer exist.
type TaskService struct {
	tasks    store.TaskStore
	statuses store.TaskStatusStore
	users    store.UserStore
	labels   store.LabelStore
	tx       store.TxRunner
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService with the given dependencies.
// If logger is nil, a default logger will be used.
func NewTaskService(
	tasks store.TaskStore,
	statuses store.TaskStatusStore,
	users store.UserStore,
	labels store.LabelStore,
	tx store.TxRunner,
	logger *slog.Logger,
) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		tasks:    tasks,
		statuses: statuses,
		users:    users,
		labels:   labels,
		tx:       tx,
		logger:   logger.With(slog.String("component", "task_service")),
	}
}

// List returns all tasks ordered by ID.
func (s *TaskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.List(ctx)
}

// Find returns the page of tasks matching the filter together with the total
// number of matching tasks.
func (s *TaskService) Find(ctx context.Context, filter store.TaskFilter, limit, offset int) ([]*domain.Task, int64, error) {
	return s.tasks.FindFiltered(ctx, filter, limit, offset)
}

// Get returns the task with the given ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// Create stores a new task. The status slug must name an existing status
// (store.ErrTaskStatusNotFound otherwise); an assignee ID pointing at a
// missing user leaves the task unassigned, and label IDs pointing at missing
// labels are dropped.
func (s *TaskService) Create(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created *domain.Task
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)
		statuses := s.statuses.WithTx(tx)
		users := s.users.WithTx(tx)
		labels := s.labels.WithTx(tx)

		status, err := statuses.GetBySlug(ctx, params.Status)
		if err != nil {
			return err
		}

		task, err := domain.NewTask(params.Title, status.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		task.StatusSlug = status.Slug

		if v, ok := params.Index.Get(); ok {
			task.Index = &v
		}
		if v, ok := params.Content.Get(); ok {
			task.Content = &v
		}

		task.AssigneeID, err = resolveAssignee(ctx, users, params.AssigneeID)
		if err != nil {
			return err
		}
		task.LabelIDs, err = resolveLabels(ctx, labels, params.LabelIDs)
		if err != nil {
			return err
		}

		if err := tasks.Create(ctx, task); err != nil {
			return err
		}
		created = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task created", slog.Int64("task_id", created.ID))
	return created, nil
}

// Update applies a partial update to a task. The target must exist
// (store.ErrTaskNotFound otherwise). A supplied status slug is resolved
// strictly: when it names no status the whole update fails with
// store.ErrTaskStatusNotFound and no field is changed.
func (s *TaskService) Update(ctx context.Context, id int64, params UpdateTaskParams) (*domain.Task, error) {
	var updated *domain.Task
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)
		statuses := s.statuses.WithTx(tx)
		users := s.users.WithTx(tx)
		labels := s.labels.WithTx(tx)

		current, err := tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		// Work on a copy so a failed resolution leaves the loaded entity
		// untouched.
		task := *current

		if v, ok := params.Title.Get(); ok {
			task.Title = v
		}
		if v, ok := params.Status.Get(); ok {
			status, err := statuses.GetBySlug(ctx, v)
			if err != nil {
				return err
			}
			task.StatusID = status.ID
			task.StatusSlug = status.Slug
		}
		if params.Index.IsSet() {
			if v, ok := params.Index.Get(); ok {
				task.Index = &v
			} else {
				task.Index = nil
			}
		}
		if params.Content.IsSet() {
			if v, ok := params.Content.Get(); ok {
				task.Content = &v
			} else {
				task.Content = nil
			}
		}
		if params.AssigneeID.IsSet() {
			task.AssigneeID, err = resolveAssignee(ctx, users, params.AssigneeID)
			if err != nil {
				return err
			}
		}
		if params.LabelIDs.IsSet() {
			task.LabelIDs, err = resolveLabels(ctx, labels, params.LabelIDs)
			if err != nil {
				return err
			}
		}

		if err := task.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		if err := tasks.Update(ctx, &task); err != nil {
			return err
		}
		updated = &task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a task and its label references.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// resolveAssignee turns an assignee parameter into a user reference. An
// absent or null parameter, and an ID that names no user, all resolve to
// unassigned; only unexpected store failures propagate.
func resolveAssignee(ctx context.Context, users store.UserStore, v optional.Value[int64]) (*int64, error) {
	id, ok := v.Get()
	if !ok {
		return nil, nil
	}
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user.ID, nil
}

// resolveLabels turns a label-ID parameter into the subset of IDs that name
// existing labels, preserving the store's ID ordering. Absent, null and
// empty parameters all resolve to no labels.
func resolveLabels(ctx context.Context, labels store.LabelStore, v optional.Value[[]int64]) ([]int64, error) {
	ids, ok := v.Get()
	if !ok || len(ids) == 0 {
		return nil, nil
	}
	found, err := labels.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	resolved := make([]int64, 0, len(found))
	for _, label := range found {
		resolved = append(resolved, label.ID)
	}
	return resolved, nil
}
