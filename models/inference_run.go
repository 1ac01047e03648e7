package models

import (
	"time"

	"heredity/domain/core"
	"heredity/domain/genetics"
)

// InferenceRun is one completed inference over a family, as stored and served
type InferenceRun struct {
	ID             core.RunID           `json:"id" db:"id"`
	Source         string               `json:"source" db:"source"`
	Fingerprint    core.Hash            `json:"fingerprint" db:"fingerprint"`
	PopulationSize int                  `json:"population_size" db:"population_size"`
	Hypotheses     int64                `json:"hypotheses" db:"hypotheses"`
	Partitions     int64                `json:"trait_partitions" db:"trait_partitions"`
	Posteriors     []genetics.Posterior `json:"posteriors" db:"-"`
	Summary        *RunSummary          `json:"summary,omitempty" db:"-"`
	DurationMS     float64              `json:"duration_ms" db:"duration_ms"`
	CreatedAt      time.Time            `json:"created_at" db:"created_at"`
}

// Result rebuilds the engine result carried by the run
func (r *InferenceRun) Result() *genetics.Result {
	return &genetics.Result{
		Posteriors:      r.Posteriors,
		Hypotheses:      r.Hypotheses,
		TraitPartitions: r.Partitions,
	}
}

// PersonSummary describes how certain the posterior of one person is
type PersonSummary struct {
	Person            core.PersonID `json:"person"`
	ExpectedGeneCount float64       `json:"expected_gene_count"`
	GeneEntropy       float64       `json:"gene_entropy"`
	TraitEntropy      float64       `json:"trait_entropy"`
	MostLikelyGenes   int           `json:"most_likely_genes"`
}

// RunSummary aggregates posteriors across the family
type RunSummary struct {
	People                []PersonSummary `json:"people"`
	MeanTraitProbability  float64         `json:"mean_trait_probability"`
	MaxTraitProbability   float64         `json:"max_trait_probability"`
	MeanExpectedGeneCount float64         `json:"mean_expected_gene_count"`
	MedianGeneEntropy     float64         `json:"median_gene_entropy"`
}

// RunListItem is the row returned when listing runs
type RunListItem struct {
	ID             core.RunID `json:"id" db:"id"`
	Source         string     `json:"source" db:"source"`
	Fingerprint    core.Hash  `json:"fingerprint" db:"fingerprint"`
	PopulationSize int        `json:"population_size" db:"population_size"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}
