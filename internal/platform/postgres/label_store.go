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

// LabelStore implements the store.LabelStore interface
// using a PostgreSQL database as the storage backend.
type LabelStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewLabelStore creates a new PostgreSQL implementation of the LabelStore
// interface.
// If logger is nil, a default logger will be used.
func NewLabelStore(db store.DBTX, logger *slog.Logger) *LabelStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &LabelStore{
		db:     db,
		logger: logger.With(slog.String("component", "label_store")),
	}
}

// Ensure LabelStore implements store.LabelStore interface
var _ store.LabelStore = (*LabelStore)(nil)

// WithTx implements store.LabelStore.WithTx
func (s *LabelStore) WithTx(tx *sql.Tx) store.LabelStore {
	return &LabelStore{db: tx, logger: s.logger}
}

func scanLabel(row interface{ Scan(dest ...any) error }) (*domain.Label, error) {
	var label domain.Label
	err := row.Scan(&label.ID, &label.Name, &label.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &label, nil
}

// Create implements store.LabelStore.Create
// Returns store.ErrLabelNameExists if the name is already taken.
func (s *LabelStore) Create(ctx context.Context, label *domain.Label) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := label.Validate(); err != nil {
		log.Warn("label validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO labels (name, created_at)
		VALUES ($1, $2)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, label.Name, label.CreatedAt).Scan(&label.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate name during label creation",
				slog.String("name", label.Name))
			return MapUniqueViolation(err, store.ErrLabelNameExists)
		}
		log.Error("failed to create label",
			slog.String("error", err.Error()),
			slog.String("name", label.Name))
		return MapError(err)
	}

	log.Info("label created successfully",
		slog.Int64("label_id", label.ID),
		slog.String("name", label.Name))
	return nil
}

// GetByID implements store.LabelStore.GetByID
// Returns store.ErrLabelNotFound if the label does not exist.
func (s *LabelStore) GetByID(ctx context.Context, id int64) (*domain.Label, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, name, created_at FROM labels WHERE id = $1`

	label, err := scanLabel(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("label not found", slog.Int64("label_id", id))
			return nil, store.ErrLabelNotFound
		}
		log.Error("failed to get label by ID",
			slog.String("error", err.Error()),
			slog.Int64("label_id", id))
		return nil, MapError(err)
	}

	return label, nil
}

// GetByIDs implements store.LabelStore.GetByIDs
// IDs with no matching label are silently skipped.
func (s *LabelStore) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Label, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return []*domain.Label{}, nil
	}

	query := `SELECT id, name, created_at FROM labels WHERE id = ANY($1) ORDER BY id`

	// pgx encodes []int64 as a Postgres int8[] for ANY($1).
	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		log.Error("failed to get labels by IDs",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	labels := []*domain.Label{}
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			log.Error("failed to scan label row",
				slog.String("error", err.Error()))
			return nil, err
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return labels, nil
}

// List implements store.LabelStore.List
func (s *LabelStore) List(ctx context.Context) ([]*domain.Label, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM labels ORDER BY id`)
	if err != nil {
		log.Error("failed to list labels",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	labels := []*domain.Label{}
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			log.Error("failed to scan label row",
				slog.String("error", err.Error()))
			return nil, err
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return labels, nil
}

// Update implements store.LabelStore.Update
// Returns store.ErrLabelNotFound if the label does not exist and
// store.ErrLabelNameExists if the new name collides with another label.
func (s *LabelStore) Update(ctx context.Context, label *domain.Label) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := label.Validate(); err != nil {
		log.Warn("label validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("label_id", label.ID))
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE labels SET name = $1 WHERE id = $2`, label.Name, label.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrLabelNameExists)
		}
		log.Error("failed to update label",
			slog.String("error", err.Error()),
			slog.Int64("label_id", label.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "label"); err != nil {
		return err
	}

	log.Info("label updated successfully",
		slog.Int64("label_id", label.ID))
	return nil
}

// Delete implements store.LabelStore.Delete
// Returns store.ErrLabelNotFound if the label does not exist.
func (s *LabelStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM labels WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete label",
			slog.String("error", err.Error()),
			slog.Int64("label_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "label"); err != nil {
		return err
	}

	log.Info("label deleted successfully",
		slog.Int64("label_id", id))
	return nil
}
