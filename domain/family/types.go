package family

import (
	"encoding/json"
	"fmt"
	"strings"

	"heredity/domain/core"
)

// Trait is the observed evidence about whether a person exhibits the trait
type Trait int

const (
	TraitUnknown Trait = iota
	TraitPresent
	TraitAbsent
)

// ParseTrait accepts "1"/"0"/"" as written by family spreadsheets, plus
// true/false/yes/no spelled out
func ParseTrait(s string) (Trait, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return TraitUnknown, nil
	case "1", "true", "yes", "y":
		return TraitPresent, nil
	case "0", "false", "no", "n":
		return TraitAbsent, nil
	default:
		return TraitUnknown, fmt.Errorf("unrecognised trait value %q", s)
	}
}

// TraitOf converts an optional boolean into evidence
func TraitOf(observed *bool) Trait {
	if observed == nil {
		return TraitUnknown
	}
	if *observed {
		return TraitPresent
	}
	return TraitAbsent
}

// Known reports whether the trait was observed
func (t Trait) Known() bool {
	return t != TraitUnknown
}

// Value returns the observed value; only meaningful when Known
func (t Trait) Value() bool {
	return t == TraitPresent
}

func (t Trait) String() string {
	switch t {
	case TraitPresent:
		return "present"
	case TraitAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes evidence as true, false or null
func (t Trait) MarshalJSON() ([]byte, error) {
	if !t.Known() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value())
}

func (t *Trait) UnmarshalJSON(data []byte) error {
	var observed *bool
	if err := json.Unmarshal(data, &observed); err != nil {
		return fmt.Errorf("trait must be true, false or null: %w", err)
	}
	*t = TraitOf(observed)
	return nil
}

// Person is one individual of the family. Mother and Father are either both
// set or both nil.
type Person struct {
	ID     core.PersonID  `json:"name"`
	Mother *core.PersonID `json:"mother,omitempty"`
	Father *core.PersonID `json:"father,omitempty"`
	Trait  Trait          `json:"trait"`
}

// NewFounder creates a person with no recorded parents
func NewFounder(id core.PersonID, trait Trait) Person {
	return Person{ID: id, Trait: trait}
}

// NewChild creates a person with both parents recorded
func NewChild(id, mother, father core.PersonID, trait Trait) Person {
	return Person{ID: id, Mother: &mother, Father: &father, Trait: trait}
}

// HasParents reports whether either parent is recorded
func (p Person) HasParents() bool {
	return p.Mother != nil || p.Father != nil
}

// IsFounder reports whether the person has no recorded parents
func (p Person) IsFounder() bool {
	return !p.HasParents()
}
