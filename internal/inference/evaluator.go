package inference

import (
	"heredity/domain/genetics"
)

// Assignment is a Hypothesis classified into explicit per-person tags
type Assignment struct {
	Genes  []genetics.GeneCount
	Traits []genetics.TraitState
}

// NewAssignment allocates tag slices for n people
func NewAssignment(n int) *Assignment {
	return &Assignment{
		Genes:  make([]genetics.GeneCount, n),
		Traits: make([]genetics.TraitState, n),
	}
}

// Classify derives every person's tags from h, overwriting previous contents
func (a *Assignment) Classify(h Hypothesis) {
	for i := range a.Genes {
		switch {
		case h.TwoCopies.Has(i):
			a.Genes[i] = genetics.TwoCopies
		case h.OneCopy.Has(i):
			a.Genes[i] = genetics.OneCopy
		default:
			a.Genes[i] = genetics.ZeroCopies
		}
		a.Traits[i] = genetics.TraitStateOf(h.HasTrait.Has(i))
	}
}

// Evaluator computes the joint probability of complete worlds
type Evaluator struct {
	pop    *Population
	tables genetics.Tables
}

// NewEvaluator binds a population to a set of tables
func NewEvaluator(pop *Population, tables genetics.Tables) *Evaluator {
	return &Evaluator{pop: pop, tables: tables}
}

// JointProbability returns the probability of exactly the world h
func (e *Evaluator) JointProbability(h Hypothesis) float64 {
	a := NewAssignment(e.pop.Len())
	a.Classify(h)
	return e.Joint(a)
}

// Joint multiplies every person's term in index order. Parents' gene counts
// are read from the same assignment.
func (e *Evaluator) Joint(a *Assignment) float64 {
	p := 1.0
	for i := range a.Genes {
		g := a.Genes[i]
		p *= e.genotype(i, a) * e.tables.TraitProbability(g, a.Traits[i])
	}
	return p
}

func (e *Evaluator) genotype(i int, a *Assignment) float64 {
	g := a.Genes[i]
	if e.pop.IsFounder(i) {
		return e.tables.GenePrior(g)
	}
	pM := e.tables.TransmissionProbability(a.Genes[e.pop.Mother[i]])
	pF := e.tables.TransmissionProbability(a.Genes[e.pop.Father[i]])
	return GenotypeProbability(g, pM, pF)
}

// GenotypeProbability returns P(child has g copies) given the probabilities
// pM and pF that the mother and father each pass the allele on
func GenotypeProbability(g genetics.GeneCount, pM, pF float64) float64 {
	switch g {
	case genetics.TwoCopies:
		return pM * pF
	case genetics.OneCopy:
		return (1-pM)*pF + pM*(1-pF)
	default:
		return (1 - pM) * (1 - pF)
	}
}
