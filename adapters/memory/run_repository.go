package memory

import (
	"context"
	"sort"
	"sync"

	"heredity/domain/core"
	"heredity/models"
	"heredity/ports"
)

// RunRepository keeps inference runs in process memory
type RunRepository struct {
	mu   sync.RWMutex
	runs map[core.RunID]*models.InferenceRun
}

// NewRunRepository creates an empty in-memory run repository
func NewRunRepository() ports.RunRepository {
	return &RunRepository{runs: make(map[core.RunID]*models.InferenceRun)}
}

// SaveRun stores a copy of the run, replacing any run with the same ID
func (r *RunRepository) SaveRun(ctx context.Context, run *models.InferenceRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := *run
	r.mu.Lock()
	r.runs[run.ID] = &stored
	r.mu.Unlock()
	return nil
}

// GetRun returns a copy of the stored run
func (r *RunRepository) GetRun(ctx context.Context, id core.RunID) (*models.InferenceRun, error) {
	r.mu.RLock()
	run, ok := r.runs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, core.ErrRunNotFound
	}
	out := *run
	return &out, nil
}

// ListRuns returns the newest runs first
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*models.RunListItem, error) {
	r.mu.RLock()
	items := make([]*models.RunListItem, 0, len(r.runs))
	for _, run := range r.runs {
		items = append(items, &models.RunListItem{
			ID:             run.ID,
			Source:         run.Source,
			Fingerprint:    run.Fingerprint,
			PopulationSize: run.PopulationSize,
			CreatedAt:      run.CreatedAt,
		})
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
