package inference

import (
	"iter"
	"math/bits"

	"heredity/domain/core"
	"heredity/domain/family"
)

// Mask is a set of people encoded as bits over the indexed population.
// Bit i is the person at family index i.
type Mask uint32

// FullMask returns the mask containing the first n people
func FullMask(n int) Mask {
	return Mask(1)<<uint(n) - 1
}

// Has reports whether person i is in the set
func (m Mask) Has(i int) bool {
	return m&(1<<uint(i)) != 0
}

// Len returns the number of people in the set
func (m Mask) Len() int {
	return bits.OnesCount32(uint32(m))
}

// Subsets yields every subset of of, from the empty set up to of itself, in
// ascending numeric order. A set of n people has 2^n subsets.
func Subsets(of Mask) iter.Seq[Mask] {
	return func(yield func(Mask) bool) {
		s := Mask(0)
		for {
			if !yield(s) {
				return
			}
			if s == of {
				return
			}
			s = (s - of) & of
		}
	}
}

// Hypothesis is one complete candidate world. OneCopy and TwoCopies are
// disjoint; everyone else has zero copies. Everyone outside HasTrait does not
// exhibit the trait.
type Hypothesis struct {
	OneCopy   Mask
	TwoCopies Mask
	HasTrait  Mask
}

// Evidence holds the observed traits as two disjoint masks
type Evidence struct {
	Present Mask
	Absent  Mask
}

// Admits reports whether a trait partition agrees with every observation:
// no known-absent person has the trait and every known-present person has it.
func (e Evidence) Admits(hasTrait Mask) bool {
	return hasTrait&e.Absent == 0 && e.Present&^hasTrait == 0
}

// Population is the family indexed for enumeration
type Population struct {
	IDs      []core.PersonID
	Mother   []int
	Father   []int
	Evidence Evidence
}

const noParent = -1

// NewPopulation indexes a family. Parents are resolved to indexes; founders
// get -1. It is safe on an unvalidated family: a single recorded parent or a
// parent outside the family is reported as a malformed family error.
func NewPopulation(fam *family.Family) (*Population, error) {
	n := fam.Len()
	pop := &Population{
		IDs:    make([]core.PersonID, n),
		Mother: make([]int, n),
		Father: make([]int, n),
	}

	for i := 0; i < n; i++ {
		p := fam.At(i)
		pop.IDs[i] = p.ID
		pop.Mother[i], pop.Father[i] = noParent, noParent

		if p.HasParents() {
			if p.Mother == nil || p.Father == nil {
				return nil, core.NewFamilyError(core.ErrSingleParent, p.ID, "")
			}
			m, ok := fam.Index(*p.Mother)
			if !ok {
				return nil, core.NewFamilyError(core.ErrDanglingParent, p.ID, "mother "+string(*p.Mother))
			}
			f, ok := fam.Index(*p.Father)
			if !ok {
				return nil, core.NewFamilyError(core.ErrDanglingParent, p.ID, "father "+string(*p.Father))
			}
			pop.Mother[i], pop.Father[i] = m, f
		}

		if p.Trait.Known() {
			if p.Trait.Value() {
				pop.Evidence.Present |= 1 << uint(i)
			} else {
				pop.Evidence.Absent |= 1 << uint(i)
			}
		}
	}

	return pop, nil
}

// Len returns the population size
func (p *Population) Len() int {
	return len(p.IDs)
}

// Full returns the mask of the whole population
func (p *Population) Full() Mask {
	return FullMask(p.Len())
}

// IsFounder reports whether person i has no recorded parents
func (p *Population) IsFounder(i int) bool {
	return p.Mother[i] == noParent
}

// TraitPartitions returns every hasTrait set consistent with the evidence,
// in ascending mask order
func (p *Population) TraitPartitions() []Mask {
	var admitted []Mask
	for s := range Subsets(p.Full()) {
		if p.Evidence.Admits(s) {
			admitted = append(admitted, s)
		}
	}
	return admitted
}

// GenePartitions yields every (onesCopy, twoCopies) pair with twoCopies drawn
// only from people outside onesCopy. There are 3^n pairs.
func (p *Population) GenePartitions() iter.Seq2[Mask, Mask] {
	full := p.Full()
	return func(yield func(Mask, Mask) bool) {
		for ones := range Subsets(full) {
			for twos := range Subsets(full &^ ones) {
				if !yield(ones, twos) {
					return
				}
			}
		}
	}
}
