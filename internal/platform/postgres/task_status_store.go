package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/platform/logger"
	"github.com/mlukashev/task-manager-api/internal/store"
)

// TaskStatusStore implements the store.TaskStatusStore interface
// using a PostgreSQL database as the storage backend.
type TaskStatusStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStatusStore creates a new PostgreSQL implementation of the
// TaskStatusStore interface.
// If logger is nil, a default logger will be used.
func NewTaskStatusStore(db store.DBTX, logger *slog.Logger) *TaskStatusStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStatusStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_status_store")),
	}
}

// Ensure TaskStatusStore implements store.TaskStatusStore interface
var _ store.TaskStatusStore = (*TaskStatusStore)(nil)

// WithTx implements store.TaskStatusStore.WithTx
func (s *TaskStatusStore) WithTx(tx *sql.Tx) store.TaskStatusStore {
	return &TaskStatusStore{db: tx, logger: s.logger}
}

func scanTaskStatus(row interface{ Scan(dest ...any) error }) (*domain.TaskStatus, error) {
	var ts domain.TaskStatus
	err := row.Scan(&ts.ID, &ts.Name, &ts.Slug, &ts.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// Create implements store.TaskStatusStore.Create
// Returns store.ErrSlugExists if the slug is already taken.
func (s *TaskStatusStore) Create(ctx context.Context, status *domain.TaskStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := status.Validate(); err != nil {
		log.Warn("task status validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO task_statuses (name, slug, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, status.Name, status.Slug, status.CreatedAt).
		Scan(&status.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate slug during task status creation",
				slog.String("slug", status.Slug))
			return MapUniqueViolation(err, store.ErrSlugExists)
		}
		log.Error("failed to create task status",
			slog.String("error", err.Error()),
			slog.String("slug", status.Slug))
		return MapError(err)
	}

	log.Info("task status created successfully",
		slog.Int64("status_id", status.ID),
		slog.String("slug", status.Slug))
	return nil
}

// GetByID implements store.TaskStatusStore.GetByID
// Returns store.ErrTaskStatusNotFound if the status does not exist.
func (s *TaskStatusStore) GetByID(ctx context.Context, id int64) (*domain.TaskStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, name, slug, created_at FROM task_statuses WHERE id = $1`

	ts, err := scanTaskStatus(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task status not found", slog.Int64("status_id", id))
			return nil, store.ErrTaskStatusNotFound
		}
		log.Error("failed to get task status by ID",
			slog.String("error", err.Error()),
			slog.Int64("status_id", id))
		return nil, MapError(err)
	}

	return ts, nil
}

// GetBySlug implements store.TaskStatusStore.GetBySlug
// Returns store.ErrTaskStatusNotFound if the status does not exist.
func (s *TaskStatusStore) GetBySlug(ctx context.Context, slug string) (*domain.TaskStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, name, slug, created_at FROM task_statuses WHERE slug = $1`

	ts, err := scanTaskStatus(s.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task status not found", slog.String("slug", slug))
			return nil, store.ErrTaskStatusNotFound
		}
		log.Error("failed to get task status by slug",
			slog.String("error", err.Error()),
			slog.String("slug", slug))
		return nil, MapError(err)
	}

	return ts, nil
}

// List implements store.TaskStatusStore.List
func (s *TaskStatusStore) List(ctx context.Context) ([]*domain.TaskStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at FROM task_statuses ORDER BY id`)
	if err != nil {
		log.Error("failed to list task statuses",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	statuses := []*domain.TaskStatus{}
	for rows.Next() {
		ts, err := scanTaskStatus(rows)
		if err != nil {
			log.Error("failed to scan task status row",
				slog.String("error", err.Error()))
			return nil, err
		}
		statuses = append(statuses, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// Update implements store.TaskStatusStore.Update
// Returns store.ErrTaskStatusNotFound if the status does not exist and
// store.ErrSlugExists if the new slug collides with another status.
func (s *TaskStatusStore) Update(ctx context.Context, status *domain.TaskStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := status.Validate(); err != nil {
		log.Warn("task status validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("status_id", status.ID))
		return err
	}

	query := `UPDATE task_statuses SET name = $1, slug = $2 WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query, status.Name, status.Slug, status.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrSlugExists)
		}
		log.Error("failed to update task status",
			slog.String("error", err.Error()),
			slog.Int64("status_id", status.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task status"); err != nil {
		return err
	}

	log.Info("task status updated successfully",
		slog.Int64("status_id", status.ID),
		slog.String("slug", status.Slug))
	return nil
}

// Delete implements store.TaskStatusStore.Delete
// Returns store.ErrTaskStatusNotFound if the status does not exist.
func (s *TaskStatusStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM task_statuses WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task status",
			slog.String("error", err.Error()),
			slog.Int64("status_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task status"); err != nil {
		return err
	}

	log.Info("task status deleted successfully",
		slog.Int64("status_id", id))
	return nil
}
