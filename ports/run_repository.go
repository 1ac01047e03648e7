package ports

import (
	"context"

	"heredity/domain/core"
	"heredity/models"
)

// RunRepository defines the interface for inference run persistence
type RunRepository interface {
	// SaveRun stores a completed run
	SaveRun(ctx context.Context, run *models.InferenceRun) error

	// GetRun retrieves a run by ID, returning core.ErrRunNotFound when absent
	GetRun(ctx context.Context, id core.RunID) (*models.InferenceRun, error)

	// ListRuns returns the most recent runs first
	ListRuns(ctx context.Context, limit int) ([]*models.RunListItem, error)
}
