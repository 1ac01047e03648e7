package migration

import (
	"context"

	"heredity/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order. Every statement is idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createInferenceRunsTable(ctx, db); err != nil {
		return errors.DatabaseError("failed to create inference_runs table", err)
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.DatabaseError("failed to create indexes", err)
	}

	return nil
}

func (r *MigrationRunner) createInferenceRunsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS inference_runs (
			id UUID PRIMARY KEY,
			source TEXT NOT NULL DEFAULT '',
			fingerprint VARCHAR(64) NOT NULL,
			population_size INTEGER NOT NULL,
			hypotheses BIGINT NOT NULL,
			trait_partitions BIGINT NOT NULL,
			posteriors JSONB NOT NULL,
			summary JSONB,
			duration_ms DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_inference_runs_created_at ON inference_runs(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_inference_runs_fingerprint ON inference_runs(fingerprint)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
