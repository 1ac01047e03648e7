package family

import (
	"strings"

	"heredity/domain/core"
)

// Family is the population under consideration for one inference run.
// Input order is preserved; it is the index order used by the engine.
type Family struct {
	persons []Person
	index   map[core.PersonID]int
}

// NewFamily builds a family from persons in the given order. It does not
// validate links; call Validate before inference.
func NewFamily(persons ...Person) *Family {
	f := &Family{
		persons: make([]Person, 0, len(persons)),
		index:   make(map[core.PersonID]int, len(persons)),
	}
	for _, p := range persons {
		f.Add(p)
	}
	return f
}

// Add appends a person. A duplicate ID is kept so Validate can report it.
func (f *Family) Add(p Person) {
	if _, exists := f.index[p.ID]; !exists {
		f.index[p.ID] = len(f.persons)
	}
	f.persons = append(f.persons, p)
}

// Len returns the population size
func (f *Family) Len() int {
	return len(f.persons)
}

// Persons returns a copy of the persons in index order
func (f *Family) Persons() []Person {
	out := make([]Person, len(f.persons))
	copy(out, f.persons)
	return out
}

// At returns the person at position i
func (f *Family) At(i int) Person {
	return f.persons[i]
}

// Index returns the position of id in the family
func (f *Family) Index(id core.PersonID) (int, bool) {
	i, ok := f.index[id]
	return i, ok
}

// Get looks up a person by id
func (f *Family) Get(id core.PersonID) (Person, bool) {
	i, ok := f.index[id]
	if !ok {
		return Person{}, false
	}
	return f.persons[i], true
}

// Validate checks the loader contract: a non-empty population with unique
// ids, and either both parents or none, each present in the population.
func (f *Family) Validate() error {
	if len(f.persons) == 0 {
		return core.ErrEmptyPopulation
	}

	seen := make(map[core.PersonID]bool, len(f.persons))
	for _, p := range f.persons {
		if seen[p.ID] {
			return core.NewFamilyError(core.ErrDuplicatePerson, p.ID, "")
		}
		seen[p.ID] = true
	}

	for _, p := range f.persons {
		if p.IsFounder() {
			continue
		}
		if p.Mother == nil || p.Father == nil {
			return core.NewFamilyError(core.ErrSingleParent, p.ID, "")
		}
		links := [2]struct {
			role string
			id   core.PersonID
		}{{"mother", *p.Mother}, {"father", *p.Father}}
		for _, link := range links {
			if link.id == p.ID {
				return core.NewFamilyError(core.ErrSelfParent, p.ID, link.role)
			}
			if _, ok := f.index[link.id]; !ok {
				return core.NewFamilyError(core.ErrDanglingParent, p.ID, link.role+" "+string(link.id))
			}
		}
	}

	return nil
}

// Fingerprint returns a canonical hash of the family records
func (f *Family) Fingerprint() core.Hash {
	var data strings.Builder
	for _, p := range f.persons {
		data.WriteString(string(p.ID))
		data.WriteByte('|')
		if p.Mother != nil {
			data.WriteString(string(*p.Mother))
		}
		data.WriteByte('|')
		if p.Father != nil {
			data.WriteString(string(*p.Father))
		}
		data.WriteByte('|')
		data.WriteString(p.Trait.String())
		data.WriteByte('\n')
	}
	return core.NewHash([]byte(data.String()))
}
