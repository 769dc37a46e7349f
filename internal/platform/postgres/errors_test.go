package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukashev/task-manager-api/internal/store"
)

func pgError(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: "users_email_key"}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      error
		wantIs  error
		passthr bool
	}{
		{name: "nil", in: nil},
		{name: "no rows", in: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "unique violation", in: pgError("23505"), wantIs: store.ErrDuplicate},
		{name: "fk violation", in: pgError("23503"), wantIs: store.ErrInvalidEntity},
		{name: "not null violation", in: pgError("23502"), wantIs: store.ErrInvalidEntity},
		{name: "unknown error", in: errors.New("boom"), passthr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.in)
			switch {
			case tt.in == nil:
				assert.NoError(t, got)
			case tt.passthr:
				assert.Equal(t, tt.in, got)
			default:
				assert.ErrorIs(t, got, tt.wantIs)
			}
		})
	}
}

func TestMapErrorWrapsOriginal(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("insert user: %w", pgError("23505"))
	got := MapError(wrapped)
	assert.ErrorIs(t, got, store.ErrDuplicate)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(wrapped, &pgErr))
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	err := MapUniqueViolation(pgError("23505"), store.ErrEmailExists)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	// non-unique errors pass through untouched
	original := errors.New("timeout")
	assert.Equal(t, original, MapUniqueViolation(original, store.ErrEmailExists))
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(pgError("23505")))
	assert.False(t, IsUniqueViolation(pgError("23503")))
	assert.True(t, IsForeignKeyViolation(pgError("23503")))
	assert.False(t, IsForeignKeyViolation(errors.New("other")))
}
