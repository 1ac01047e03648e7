package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"heredity/domain/core"
	"heredity/domain/genetics"
	"heredity/models"
	"heredity/ports"

	"github.com/jmoiron/sqlx"
)

// RunRepositoryImpl implements RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

type runRow struct {
	ID             string         `db:"id"`
	Source         string         `db:"source"`
	Fingerprint    string         `db:"fingerprint"`
	PopulationSize int            `db:"population_size"`
	Hypotheses     int64          `db:"hypotheses"`
	Partitions     int64          `db:"trait_partitions"`
	Posteriors     []byte         `db:"posteriors"`
	Summary        sql.NullString `db:"summary"`
	DurationMS     float64        `db:"duration_ms"`
	CreatedAt      time.Time      `db:"created_at"`
}

// SaveRun inserts a run, replacing an existing one with the same ID
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, run *models.InferenceRun) error {
	posteriorsJSON, err := json.Marshal(run.Posteriors)
	if err != nil {
		return fmt.Errorf("failed to marshal posteriors: %w", err)
	}
	var summaryJSON sql.NullString
	if run.Summary != nil {
		encoded, err := json.Marshal(run.Summary)
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		summaryJSON = sql.NullString{String: string(encoded), Valid: true}
	}

	row := runRow{
		ID:             run.ID.String(),
		Source:         run.Source,
		Fingerprint:    run.Fingerprint.String(),
		PopulationSize: run.PopulationSize,
		Hypotheses:     run.Hypotheses,
		Partitions:     run.Partitions,
		Posteriors:     posteriorsJSON,
		Summary:        summaryJSON,
		DurationMS:     run.DurationMS,
		CreatedAt:      run.CreatedAt,
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO inference_runs (
			id, source, fingerprint, population_size, hypotheses, trait_partitions,
			posteriors, summary, duration_ms, created_at
		) VALUES (
			:id, :source, :fingerprint, :population_size, :hypotheses, :trait_partitions,
			:posteriors, :summary, :duration_ms, :created_at
		)
		ON CONFLICT (id) DO UPDATE SET
			source = EXCLUDED.source,
			fingerprint = EXCLUDED.fingerprint,
			population_size = EXCLUDED.population_size,
			hypotheses = EXCLUDED.hypotheses,
			trait_partitions = EXCLUDED.trait_partitions,
			posteriors = EXCLUDED.posteriors,
			summary = EXCLUDED.summary,
			duration_ms = EXCLUDED.duration_ms`, row)
	return err
}

// GetRun retrieves a run by ID
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.RunID) (*models.InferenceRun, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, source, fingerprint, population_size, hypotheses, trait_partitions,
			   posteriors, summary, duration_ms, created_at
		FROM inference_runs
		WHERE id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	run := &models.InferenceRun{
		ID:             core.RunID(row.ID),
		Source:         row.Source,
		Fingerprint:    core.Hash(row.Fingerprint),
		PopulationSize: row.PopulationSize,
		Hypotheses:     row.Hypotheses,
		Partitions:     row.Partitions,
		DurationMS:     row.DurationMS,
		CreatedAt:      row.CreatedAt,
	}

	var posteriors []genetics.Posterior
	if err := json.Unmarshal(row.Posteriors, &posteriors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posteriors: %w", err)
	}
	run.Posteriors = posteriors

	if row.Summary.Valid {
		var summary models.RunSummary
		if err := json.Unmarshal([]byte(row.Summary.String), &summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
		}
		run.Summary = &summary
	}

	return run, nil
}

// ListRuns returns the newest runs first
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]*models.RunListItem, error) {
	if limit <= 0 {
		limit = 50
	}

	var items []*models.RunListItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, source, fingerprint, population_size, created_at
		FROM inference_runs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return items, nil
}
