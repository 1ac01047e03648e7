package genetics

import (
	"fmt"
	"math"

	"heredity/domain/core"
)

// GeneCount is the number of copies of the modeled allele a person carries
type GeneCount int

const (
	ZeroCopies GeneCount = iota
	OneCopy
	TwoCopies
)

// GeneCounts lists every gene count in ascending order
var GeneCounts = [...]GeneCount{ZeroCopies, OneCopy, TwoCopies}

func (g GeneCount) String() string {
	return fmt.Sprintf("%d", int(g))
}

// TraitState is whether a person exhibits the trait in a hypothesis
type TraitState int

const (
	NoTrait TraitState = iota
	HasTrait
)

// TraitStateOf converts a boolean into a TraitState
func TraitStateOf(has bool) TraitState {
	if has {
		return HasTrait
	}
	return NoTrait
}

// Bool returns true for HasTrait
func (t TraitState) Bool() bool {
	return t == HasTrait
}

// Tables are the conditional probability tables of the inheritance network.
// A Tables value is never mutated once built; pass it by value.
type Tables struct {
	// Gene is the unconditional gene-count prior used for founders
	Gene [3]float64
	// Trait[g][t] is P(trait state t | gene count g)
	Trait [3][2]float64
	// Mutation is the probability that a transmitted allele flips
	Mutation float64
}

// DefaultTables returns the fixed tables of the modeled gene
func DefaultTables() Tables {
	return Tables{
		Gene: [3]float64{
			ZeroCopies: 0.96,
			OneCopy:    0.03,
			TwoCopies:  0.01,
		},
		Trait: [3][2]float64{
			ZeroCopies: {NoTrait: 0.99, HasTrait: 0.01},
			OneCopy:    {NoTrait: 0.44, HasTrait: 0.56},
			TwoCopies:  {NoTrait: 0.35, HasTrait: 0.65},
		},
		Mutation: 0.01,
	}
}

const tableTolerance = 1e-9

// Validate checks that every row is a probability distribution
func (t Tables) Validate() error {
	if err := checkDistribution("gene prior", t.Gene[:]); err != nil {
		return err
	}
	for _, g := range GeneCounts {
		if err := checkDistribution(fmt.Sprintf("trait given %d copies", g), t.Trait[g][:]); err != nil {
			return err
		}
	}
	if t.Mutation < 0 || t.Mutation > 1 || math.IsNaN(t.Mutation) {
		return fmt.Errorf("%w: mutation rate %v outside [0,1]", core.ErrInvalidTables, t.Mutation)
	}
	return nil
}

func checkDistribution(name string, row []float64) error {
	sum := 0.0
	for _, v := range row {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s has value %v outside [0,1]", core.ErrInvalidTables, name, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > tableTolerance {
		return fmt.Errorf("%w: %s sums to %v", core.ErrInvalidTables, name, sum)
	}
	return nil
}

// GenePrior returns P(gene count = g) for a founder
func (t Tables) GenePrior(g GeneCount) float64 {
	return t.Gene[g]
}

// TraitProbability returns P(trait state | gene count)
func (t Tables) TraitProbability(g GeneCount, state TraitState) float64 {
	return t.Trait[g][state]
}

// TransmissionProbability returns the probability that a parent with the
// given gene count passes the allele to a child. Heterozygous parents pass it
// with probability one half; mutation is ignored at that resolution.
func (t Tables) TransmissionProbability(parent GeneCount) float64 {
	switch parent {
	case TwoCopies:
		return 1 - t.Mutation
	case OneCopy:
		return 0.5
	default:
		return t.Mutation
	}
}
