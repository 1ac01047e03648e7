package genetics

import (
	"encoding/json"

	"heredity/domain/core"
)

// GeneDistribution holds one value per gene count
type GeneDistribution [3]float64

// Sum returns the total mass of the distribution
func (d GeneDistribution) Sum() float64 {
	return d[ZeroCopies] + d[OneCopy] + d[TwoCopies]
}

// Expected returns the expected gene count
func (d GeneDistribution) Expected() float64 {
	return d[OneCopy] + 2*d[TwoCopies]
}

func (d GeneDistribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]float64{
		"0": d[ZeroCopies],
		"1": d[OneCopy],
		"2": d[TwoCopies],
	})
}

func (d *GeneDistribution) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*d = GeneDistribution{m["0"], m["1"], m["2"]}
	return nil
}

// TraitDistribution holds one value per trait state
type TraitDistribution [2]float64

// Sum returns the total mass of the distribution
func (d TraitDistribution) Sum() float64 {
	return d[NoTrait] + d[HasTrait]
}

func (d TraitDistribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]float64{
		"true":  d[HasTrait],
		"false": d[NoTrait],
	})
}

func (d *TraitDistribution) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*d = TraitDistribution{NoTrait: m["false"], HasTrait: m["true"]}
	return nil
}

// Posterior is the normalized, evidence-conditioned distribution for one person
type Posterior struct {
	Person core.PersonID     `json:"person"`
	Gene   GeneDistribution  `json:"gene"`
	Trait  TraitDistribution `json:"trait"`
}

// Result is the output of one inference run, in family index order
type Result struct {
	Posteriors []Posterior `json:"posteriors"`
	// Hypotheses is the number of complete worlds evaluated
	Hypotheses int64 `json:"hypotheses"`
	// TraitPartitions is the number of trait partitions admitted by the evidence
	TraitPartitions int64 `json:"trait_partitions"`
}

// Get returns the posterior of a person
func (r *Result) Get(id core.PersonID) (Posterior, bool) {
	for _, p := range r.Posteriors {
		if p.Person == id {
			return p, true
		}
	}
	return Posterior{}, false
}
