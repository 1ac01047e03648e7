package inference

import (
	"fmt"

	"heredity/domain/genetics"

	"gonum.org/v1/gonum/floats"
)

// Accumulator sums joint probabilities into per-person gene and trait buckets
type Accumulator struct {
	gene  []genetics.GeneDistribution
	trait []genetics.TraitDistribution
}

// NewAccumulator creates zeroed buckets for n people
func NewAccumulator(n int) *Accumulator {
	return &Accumulator{
		gene:  make([]genetics.GeneDistribution, n),
		trait: make([]genetics.TraitDistribution, n),
	}
}

// Update adds p to the bucket each person falls into under a
func (acc *Accumulator) Update(a *Assignment, p float64) {
	for i := range acc.gene {
		acc.gene[i][a.Genes[i]] += p
		acc.trait[i][a.Traits[i]] += p
	}
}

// Merge adds other's totals into acc
func (acc *Accumulator) Merge(other *Accumulator) {
	for i := range acc.gene {
		floats.Add(acc.gene[i][:], other.gene[i][:])
		floats.Add(acc.trait[i][:], other.trait[i][:])
	}
}

// Gene returns person i's gene buckets
func (acc *Accumulator) Gene(i int) genetics.GeneDistribution {
	return acc.gene[i]
}

// Trait returns person i's trait buckets
func (acc *Accumulator) Trait(i int) genetics.TraitDistribution {
	return acc.trait[i]
}

// Normalize rescales every person's gene buckets and trait buckets to sum to
// one. Nothing is modified unless every sum is strictly positive.
func (acc *Accumulator) Normalize() error {
	for i := range acc.gene {
		if s := floats.Sum(acc.gene[i][:]); !(s > 0) {
			return &ZeroMassError{Index: i, Kind: "gene", Sum: s}
		}
		if s := floats.Sum(acc.trait[i][:]); !(s > 0) {
			return &ZeroMassError{Index: i, Kind: "trait", Sum: s}
		}
	}

	for i := range acc.gene {
		divideBy(acc.gene[i][:], floats.Sum(acc.gene[i][:]))
		divideBy(acc.trait[i][:], floats.Sum(acc.trait[i][:]))
	}
	return nil
}

// divideBy divides in place rather than scaling by 1/sum, so a bucket holding
// the whole mass becomes exactly 1.
func divideBy(dst []float64, sum float64) {
	for k := range dst {
		dst[k] /= sum
	}
}

// ZeroMassError reports a distribution that received no probability mass
type ZeroMassError struct {
	Index int
	Kind  string
	Sum   float64
}

func (e *ZeroMassError) Error() string {
	return fmt.Sprintf("%s distribution of person %d has total mass %v", e.Kind, e.Index, e.Sum)
}
