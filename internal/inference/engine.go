package inference

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"heredity/domain/core"
	"heredity/domain/family"
	"heredity/domain/genetics"
	"heredity/internal"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxPopulation bounds the 6^n enumeration to roughly 60 million
	// worlds
	DefaultMaxPopulation = 10
	// HardMaxPopulation is the largest population the engine accepts at all
	HardMaxPopulation = 16
)

// Engine performs exact inference by enumerating every hypothesis
type Engine struct {
	tables        genetics.Tables
	workers       int
	maxPopulation int
	logger        *internal.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithWorkers sets how many trait partitions are evaluated concurrently
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithMaxPopulation sets the largest family Run accepts, capped at HardMaxPopulation
func WithMaxPopulation(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPopulation = min(n, HardMaxPopulation)
		}
	}
}

// WithLogger sets the engine logger
func WithLogger(l *internal.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l.With("inference")
		}
	}
}

// NewEngine creates an engine over fixed conditional probability tables
func NewEngine(tables genetics.Tables, opts ...Option) *Engine {
	e := &Engine{
		tables:        tables,
		workers:       runtime.NumCPU(),
		maxPopulation: DefaultMaxPopulation,
		logger:        internal.DefaultLogger.With("inference"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tables returns the tables the engine evaluates against
func (e *Engine) Tables() genetics.Tables {
	return e.tables
}

// Run computes every person's posterior gene and trait distributions
func (e *Engine) Run(ctx context.Context, fam *family.Family) (*genetics.Result, error) {
	start := time.Now()

	pop, err := e.prepare(fam)
	if err != nil {
		return nil, err
	}

	acc, stats, err := e.accumulate(ctx, pop)
	if err != nil {
		return nil, err
	}

	if err := acc.Normalize(); err != nil {
		var zm *ZeroMassError
		if errors.As(err, &zm) {
			return nil, fmt.Errorf("%w: %s distribution of %q received no mass",
				core.ErrNoConsistentHypothesis, zm.Kind, pop.IDs[zm.Index])
		}
		return nil, err
	}

	result := &genetics.Result{
		Posteriors:      make([]genetics.Posterior, pop.Len()),
		Hypotheses:      stats.hypotheses,
		TraitPartitions: stats.partitions,
	}
	for i, id := range pop.IDs {
		result.Posteriors[i] = genetics.Posterior{
			Person: id,
			Gene:   acc.Gene(i),
			Trait:  acc.Trait(i),
		}
	}

	e.logger.Debug("population=%d partitions=%d hypotheses=%d elapsed=%s",
		pop.Len(), stats.partitions, stats.hypotheses, time.Since(start))
	return result, nil
}

func (e *Engine) prepare(fam *family.Family) (*Population, error) {
	if err := e.tables.Validate(); err != nil {
		return nil, err
	}
	if err := fam.Validate(); err != nil {
		return nil, err
	}
	if fam.Len() > e.maxPopulation {
		return nil, fmt.Errorf("%w: %d people, limit is %d",
			core.ErrPopulationTooLarge, fam.Len(), e.maxPopulation)
	}
	return NewPopulation(fam)
}

type runStats struct {
	partitions int64
	hypotheses int64
}

// accumulate sums every evidence-consistent world into un-normalized buckets.
// Each trait partition gets its own partial accumulator and partials are
// merged in ascending mask order, so the totals do not depend on the number
// of workers.
func (e *Engine) accumulate(ctx context.Context, pop *Population) (*Accumulator, runStats, error) {
	partitions := pop.TraitPartitions()
	partials := make([]*Accumulator, len(partitions))
	counts := make([]int64, len(partitions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, hasTrait := range partitions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			partials[i], counts[i] = e.accumulatePartition(pop, hasTrait)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, runStats{}, err
	}

	total := NewAccumulator(pop.Len())
	stats := runStats{partitions: int64(len(partitions))}
	for i, partial := range partials {
		total.Merge(partial)
		stats.hypotheses += counts[i]
	}
	return total, stats, nil
}

func (e *Engine) accumulatePartition(pop *Population, hasTrait Mask) (*Accumulator, int64) {
	eval := NewEvaluator(pop, e.tables)
	acc := NewAccumulator(pop.Len())
	a := NewAssignment(pop.Len())

	var n int64
	for ones, twos := range pop.GenePartitions() {
		a.Classify(Hypothesis{OneCopy: ones, TwoCopies: twos, HasTrait: hasTrait})
		acc.Update(a, eval.Joint(a))
		n++
	}
	return acc, n
}
