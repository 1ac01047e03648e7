package inference

import (
	"context"
	"testing"

	"heredity/domain/core"
	"heredity/domain/family"
	"heredity/domain/genetics"
	"heredity/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(opts ...Option) *Engine {
	opts = append([]Option{WithLogger(internal.Discard())}, opts...)
	return NewEngine(genetics.DefaultTables(), opts...)
}

func assertNormalized(t *testing.T, result *genetics.Result) {
	t.Helper()
	for _, p := range result.Posteriors {
		assert.InDelta(t, 1.0, p.Gene.Sum(), 1e-9, "gene distribution of %s", p.Person)
		assert.InDelta(t, 1.0, p.Trait.Sum(), 1e-9, "trait distribution of %s", p.Person)
	}
}

func TestRunWithoutEvidenceIsNormalized(t *testing.T) {
	fam := family.NewFamily(
		family.NewFounder("Arthur", family.TraitUnknown),
		family.NewFounder("Molly", family.TraitUnknown),
		family.NewChild("Ron", "Molly", "Arthur", family.TraitUnknown),
		family.NewChild("Ginny", "Molly", "Arthur", family.TraitUnknown),
		family.NewFounder("Hermione", family.TraitUnknown),
		family.NewChild("Rose", "Hermione", "Ron", family.TraitUnknown),
	)

	result, err := newTestEngine().Run(context.Background(), fam)
	require.NoError(t, err)
	require.Len(t, result.Posteriors, 6)
	assertNormalized(t, result)

	// 2^6 trait partitions times 3^6 gene partitions
	assert.Equal(t, int64(64), result.TraitPartitions)
	assert.Equal(t, int64(64*729), result.Hypotheses)
}

func TestRunSingleFounderMatchesPrior(t *testing.T) {
	result, err := newTestEngine().Run(context.Background(),
		family.NewFamily(family.NewFounder("Petunia", family.TraitUnknown)))
	require.NoError(t, err)

	p := result.Posteriors[0]
	assert.InDelta(t, 0.96, p.Gene[genetics.ZeroCopies], 1e-12)
	assert.InDelta(t, 0.03, p.Gene[genetics.OneCopy], 1e-12)
	assert.InDelta(t, 0.01, p.Gene[genetics.TwoCopies], 1e-12)
	assert.InDelta(t, 0.0329, p.Trait[genetics.HasTrait], 1e-12)
}

func TestRunObservedParentIsCertain(t *testing.T) {
	result, err := newTestEngine().Run(context.Background(), potters())
	require.NoError(t, err)
	assertNormalized(t, result)

	lily, ok := result.Get("Lily")
	require.True(t, ok)
	assert.Equal(t, 1.0, lily.Trait[genetics.HasTrait])
	assert.Equal(t, 0.0, lily.Trait[genetics.NoTrait])

	for _, id := range []core.PersonID{"James", "Harry"} {
		p, ok := result.Get(id)
		require.True(t, ok)
		assert.Greater(t, p.Trait[genetics.HasTrait], 0.0)
		assert.Greater(t, p.Trait[genetics.NoTrait], 0.0)
		assert.Less(t, p.Trait[genetics.HasTrait], 1.0)
	}
}

func TestRunMatchesReferencePosteriors(t *testing.T) {
	fam := family.NewFamily(
		family.NewChild("Harry", "Lily", "James", family.TraitUnknown),
		family.NewFounder("James", family.TraitPresent),
		family.NewFounder("Lily", family.TraitAbsent),
	)

	result, err := newTestEngine().Run(context.Background(), fam)
	require.NoError(t, err)

	expected := map[core.PersonID]struct {
		gene  genetics.GeneDistribution
		trait float64
	}{
		"Harry": {genetics.GeneDistribution{0.5351, 0.4557, 0.0092}, 0.2665},
		"James": {genetics.GeneDistribution{0.2918, 0.5106, 0.1976}, 1.0},
		"Lily":  {genetics.GeneDistribution{0.9827, 0.0136, 0.0036}, 0.0},
	}
	for id, want := range expected {
		got, ok := result.Get(id)
		require.True(t, ok)
		for _, g := range genetics.GeneCounts {
			assert.InDelta(t, want.gene[g], got.Gene[g], 1e-4, "%s gene %d", id, g)
		}
		assert.InDelta(t, want.trait, got.Trait[genetics.HasTrait], 1e-4, "%s trait", id)
	}
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	first, err := newTestEngine(WithWorkers(1)).Run(context.Background(), potters())
	require.NoError(t, err)
	second, err := newTestEngine(WithWorkers(1)).Run(context.Background(), potters())
	require.NoError(t, err)
	parallel, err := newTestEngine(WithWorkers(8)).Run(context.Background(), potters())
	require.NoError(t, err)

	assert.Equal(t, first.Posteriors, second.Posteriors)
	assert.Equal(t, first.Posteriors, parallel.Posteriors)
}

func TestRunContradictoryEvidence(t *testing.T) {
	// A trait nobody can express makes an observed trait impossible
	tables := genetics.DefaultTables()
	for _, g := range genetics.GeneCounts {
		tables.Trait[g] = [2]float64{genetics.NoTrait: 1, genetics.HasTrait: 0}
	}
	engine := NewEngine(tables, WithLogger(internal.Discard()))

	_, err := engine.Run(context.Background(), potters())
	assert.ErrorIs(t, err, core.ErrNoConsistentHypothesis)
}

func TestRunRejectsMalformedFamily(t *testing.T) {
	fam := family.NewFamily(
		family.NewChild("Harry", "Lily", "James", family.TraitUnknown),
		family.NewFounder("Lily", family.TraitUnknown),
	)

	_, err := newTestEngine().Run(context.Background(), fam)
	assert.ErrorIs(t, err, core.ErrDanglingParent)
}

func TestRunRejectsOversizedPopulation(t *testing.T) {
	fam := family.NewFamily()
	for _, id := range []core.PersonID{"a", "b", "c", "d"} {
		fam.Add(family.NewFounder(id, family.TraitUnknown))
	}

	_, err := newTestEngine(WithMaxPopulation(3)).Run(context.Background(), fam)
	assert.ErrorIs(t, err, core.ErrPopulationTooLarge)
}

func TestRunRejectsInvalidTables(t *testing.T) {
	tables := genetics.DefaultTables()
	tables.Gene[genetics.ZeroCopies] = 0.5
	engine := NewEngine(tables, WithLogger(internal.Discard()))

	_, err := engine.Run(context.Background(), potters())
	assert.ErrorIs(t, err, core.ErrInvalidTables)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine().Run(ctx, potters())
	assert.ErrorIs(t, err, context.Canceled)
}
