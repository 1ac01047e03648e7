package app

import (
	"context"
	"time"

	"heredity/domain/core"
	"heredity/domain/family"
	"heredity/internal"
	"heredity/internal/errors"
	"heredity/internal/report"
	"heredity/models"
	"heredity/ports"
)

// InferenceService runs inference over a family, summarizes and persists it
type InferenceService struct {
	engine ports.InferencePort
	runs   ports.RunRepository
	logger *internal.Logger
}

// NewInferenceService creates an inference service
func NewInferenceService(engine ports.InferencePort, runs ports.RunRepository, logger *internal.Logger) *InferenceService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &InferenceService{
		engine: engine,
		runs:   runs,
		logger: logger.With("InferenceService"),
	}
}

// Infer computes posteriors for fam and stores the run. source names where
// the family came from and is informational only.
func (s *InferenceService) Infer(ctx context.Context, source string, fam *family.Family) (*models.InferenceRun, error) {
	startTime := time.Now()

	result, err := s.engine.Run(ctx, fam)
	if err != nil {
		s.logger.Warn("inference over %s failed: %v", source, err)
		return nil, errors.Wrapf(err, "inference over %d people failed", fam.Len())
	}

	summary, err := report.Summarize(result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize posteriors")
	}

	run := &models.InferenceRun{
		ID:             core.NewRunID(),
		Source:         source,
		Fingerprint:    fam.Fingerprint(),
		PopulationSize: fam.Len(),
		Hypotheses:     result.Hypotheses,
		Partitions:     result.TraitPartitions,
		Posteriors:     result.Posteriors,
		Summary:        summary,
		DurationMS:     float64(time.Since(startTime).Microseconds()) / 1000,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.runs.SaveRun(ctx, run); err != nil {
		return nil, errors.DatabaseError("failed to save inference run", err)
	}

	s.logger.Info("run %s: %d people, %d hypotheses, fingerprint %s, %.2fms",
		run.ID, run.PopulationSize, run.Hypotheses, run.Fingerprint.Short(), run.DurationMS)
	return run, nil
}

// InferFrom loads the family through reader and runs Infer
func (s *InferenceService) InferFrom(ctx context.Context, source string, reader ports.FamilyReader) (*models.InferenceRun, error) {
	fam, err := reader.ReadFamily(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load family from %s", source)
	}
	return s.Infer(ctx, source, fam)
}

// GetRun returns a stored run
func (s *InferenceService) GetRun(ctx context.Context, id core.RunID) (*models.InferenceRun, error) {
	run, err := s.runs.GetRun(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load run %s", id)
	}
	return run, nil
}

// ListRuns returns the most recent runs
func (s *InferenceService) ListRuns(ctx context.Context, limit int) ([]*models.RunListItem, error) {
	items, err := s.runs.ListRuns(ctx, limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list runs", err)
	}
	return items, nil
}
