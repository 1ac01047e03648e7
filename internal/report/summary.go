package report

import (
	"fmt"

	"heredity/domain/genetics"
	"heredity/models"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	gstat "gonum.org/v1/gonum/stat"
)

// Summarize describes how informative each posterior is and aggregates the
// family. Entropies are in nats.
func Summarize(result *genetics.Result) (*models.RunSummary, error) {
	if len(result.Posteriors) == 0 {
		return nil, fmt.Errorf("cannot summarize an empty result")
	}

	summary := &models.RunSummary{People: make([]models.PersonSummary, len(result.Posteriors))}
	traitProbs := make([]float64, len(result.Posteriors))
	expected := make([]float64, len(result.Posteriors))
	geneEntropies := make([]float64, len(result.Posteriors))

	for i, p := range result.Posteriors {
		gene := p.Gene
		trait := p.Trait
		summary.People[i] = models.PersonSummary{
			Person:            p.Person,
			ExpectedGeneCount: gene.Expected(),
			GeneEntropy:       gstat.Entropy(gene[:]),
			TraitEntropy:      gstat.Entropy(trait[:]),
			MostLikelyGenes:   floats.MaxIdx(gene[:]),
		}
		traitProbs[i] = trait[genetics.HasTrait]
		expected[i] = summary.People[i].ExpectedGeneCount
		geneEntropies[i] = summary.People[i].GeneEntropy
	}

	var err error
	if summary.MeanTraitProbability, err = stats.Mean(traitProbs); err != nil {
		return nil, fmt.Errorf("mean trait probability: %w", err)
	}
	if summary.MaxTraitProbability, err = stats.Max(traitProbs); err != nil {
		return nil, fmt.Errorf("max trait probability: %w", err)
	}
	if summary.MeanExpectedGeneCount, err = stats.Mean(expected); err != nil {
		return nil, fmt.Errorf("mean expected gene count: %w", err)
	}
	if summary.MedianGeneEntropy, err = stats.Median(geneEntropies); err != nil {
		return nil, fmt.Errorf("median gene entropy: %w", err)
	}

	return summary, nil
}
