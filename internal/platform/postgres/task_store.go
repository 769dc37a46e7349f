package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/platform/logger"
	"github.com/mlukashev/task-manager-api/internal/store"
)

// TaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
// It owns the task_labels join rows alongside the tasks table.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface.
// If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx, logger: s.logger}
}

// taskSelect joins task_statuses so every read carries the status slug.
const taskSelect = `
	SELECT t.id, t.name, t.index, t.description, t.task_status_id, ts.slug,
	       t.assignee_id, t.created_at
	FROM tasks t
	JOIN task_statuses ts ON ts.id = t.task_status_id
`

// buildTaskFilter composes the conjunctive WHERE clause for a task search.
// It returns the clause (empty string when the filter is empty) and the
// ordered argument list. Placeholders start at $1.
func buildTaskFilter(f store.TaskFilter) (string, []any) {
	var conds []string
	var args []any

	if f.TitleCont != nil {
		args = append(args, "%"+*f.TitleCont+"%")
		conds = append(conds, fmt.Sprintf("t.name ILIKE $%d", len(args)))
	}
	if f.AssigneeID != nil {
		args = append(args, *f.AssigneeID)
		conds = append(conds, fmt.Sprintf("t.assignee_id = $%d", len(args)))
	}
	if f.StatusSlug != nil {
		args = append(args, *f.StatusSlug)
		conds = append(conds, fmt.Sprintf("ts.slug = $%d", len(args)))
	}
	if f.LabelID != nil {
		args = append(args, *f.LabelID)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM task_labels tl WHERE tl.task_id = t.id AND tl.label_id = $%d)",
			len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func scanTask(row interface{ Scan(dest ...any) error }) (*domain.Task, error) {
	var task domain.Task
	var index sql.NullInt64
	var content sql.NullString
	var assigneeID sql.NullInt64

	err := row.Scan(
		&task.ID,
		&task.Title,
		&index,
		&content,
		&task.StatusID,
		&task.StatusSlug,
		&assigneeID,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if index.Valid {
		i := int(index.Int64)
		task.Index = &i
	}
	if content.Valid {
		c := content.String
		task.Content = &c
	}
	if assigneeID.Valid {
		id := assigneeID.Int64
		task.AssigneeID = &id
	}
	return &task, nil
}

// Create implements store.TaskStore.Create
// It saves the task and its label references. Callers that need atomicity
// with other operations pass a transaction via WithTx.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (name, index, description, task_status_id, assignee_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Index,
		task.Content,
		task.StatusID,
		task.AssigneeID,
		task.CreatedAt,
	).Scan(&task.ID)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := s.replaceLabels(ctx, task.ID, task.LabelIDs); err != nil {
		return err
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.Int64("status_id", task.StatusID))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := scanTask(s.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}

	if err := s.loadLabels(ctx, []*domain.Task{task}); err != nil {
		return nil, err
	}
	return task, nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.queryTasks(ctx, taskSelect+` ORDER BY t.id`)
}

// FindFiltered implements store.TaskStore.FindFiltered
// The returned total counts all rows matching the filter, independent of the
// page window.
func (s *TaskStore) FindFiltered(
	ctx context.Context,
	filter store.TaskFilter,
	limit, offset int,
) ([]*domain.Task, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildTaskFilter(filter)

	countQuery := `
		SELECT COUNT(*)
		FROM tasks t
		JOIN task_statuses ts ON ts.id = t.task_status_id
	` + where

	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count filtered tasks",
			slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	pageQuery := fmt.Sprintf("%s %s ORDER BY t.id LIMIT $%d OFFSET $%d",
		taskSelect, where, len(args)+1, len(args)+2)
	pageArgs := append(append([]any{}, args...), limit, offset)

	tasks, err := s.queryTasks(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, err
	}

	log.Debug("filtered tasks retrieved",
		slog.Int("count", len(tasks)),
		slog.Int64("total", total))
	return tasks, total, nil
}

// Update implements store.TaskStore.Update
// It replaces the task row and its label references.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	query := `
		UPDATE tasks
		SET name = $1, index = $2, description = $3, task_status_id = $4, assignee_id = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Index,
		task.Content,
		task.StatusID,
		task.AssigneeID,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		return err
	}

	if err := s.replaceLabels(ctx, task.ID, task.LabelIDs); err != nil {
		return err
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete
// The task_labels rows go with the task via ON DELETE CASCADE.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		return err
	}

	log.Info("task deleted successfully",
		slog.Int64("task_id", id))
	return nil
}

// ExistsByAssigneeID implements store.TaskStore.ExistsByAssigneeID
func (s *TaskStore) ExistsByAssigneeID(ctx context.Context, userID int64) (bool, error) {
	return s.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE assignee_id = $1)`, userID)
}

// ExistsByStatusID implements store.TaskStore.ExistsByStatusID
func (s *TaskStore) ExistsByStatusID(ctx context.Context, statusID int64) (bool, error) {
	return s.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE task_status_id = $1)`, statusID)
}

// ExistsByLabelID implements store.TaskStore.ExistsByLabelID
func (s *TaskStore) ExistsByLabelID(ctx context.Context, labelID int64) (bool, error) {
	return s.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM task_labels WHERE label_id = $1)`, labelID)
}

func (s *TaskStore) exists(ctx context.Context, query string, arg int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var found bool
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		log.Error("existence query failed",
			slog.String("error", err.Error()))
		return false, MapError(err)
	}
	return found, nil
}

func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadLabels(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// loadLabels fills LabelIDs for the given tasks in one query.
func (s *TaskStore) loadLabels(ctx context.Context, tasks []*domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Task, len(tasks))
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		t.LabelIDs = []int64{}
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT task_id, label_id FROM task_labels WHERE task_id = ANY($1) ORDER BY label_id`,
		ids)
	if err != nil {
		log.Error("failed to load task labels",
			slog.String("error", err.Error()))
		return MapError(err)
	}
	defer closeRows(rows, log)

	for rows.Next() {
		var taskID, labelID int64
		if err := rows.Scan(&taskID, &labelID); err != nil {
			return err
		}
		if t, ok := byID[taskID]; ok {
			t.LabelIDs = append(t.LabelIDs, labelID)
		}
	}
	return rows.Err()
}

// replaceLabels rewrites the task_labels rows for a task.
func (s *TaskStore) replaceLabels(ctx context.Context, taskID int64, labelIDs []int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM task_labels WHERE task_id = $1`, taskID); err != nil {
		log.Error("failed to clear task labels",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID))
		return MapError(err)
	}

	for _, labelID := range labelIDs {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO task_labels (task_id, label_id) VALUES ($1, $2)`,
			taskID, labelID); err != nil {
			log.Error("failed to attach label to task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", taskID),
				slog.Int64("label_id", labelID))
			return MapError(err)
		}
	}
	return nil
}
