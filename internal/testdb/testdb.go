// Package testdb provides helpers for integration tests that need a real
// Postgres database. Tests using it skip automatically when the
// TEST_DATABASE_URL environment variable is not set, so the unit suite stays
// runnable without external services.
package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx database/sql driver
	"github.com/pressly/goose/v3"

	"github.com/mlukashev/task-manager-api/migrations"
)

// EnvVar names the environment variable carrying the test database URL.
const EnvVar = "TEST_DATABASE_URL"

// Get opens a connection to the test database and brings its schema up to
// date. The test is skipped when no test database is configured.
func Get(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(EnvVar)
	if url == "" {
		t.Skipf("skipping: %s not set", EnvVar)
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("failed to set migration dialect: %v", err)
	}
	if err := goose.Up(db, "."); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// leave no rows behind regardless of outcome.
func WithTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("failed to begin test transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(tx)
}
