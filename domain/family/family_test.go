package family

import (
	"encoding/json"
	"testing"

	"heredity/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func potters() *Family {
	return NewFamily(
		NewChild("Harry", "Lily", "James", TraitUnknown),
		NewFounder("James", TraitUnknown),
		NewFounder("Lily", TraitPresent),
	)
}

func TestParseTrait(t *testing.T) {
	tests := []struct {
		input    string
		expected Trait
		hasError bool
	}{
		{"1", TraitPresent, false},
		{"0", TraitAbsent, false},
		{"", TraitUnknown, false},
		{" TRUE ", TraitPresent, false},
		{"no", TraitAbsent, false},
		{"maybe", TraitUnknown, true},
	}

	for _, tt := range tests {
		got, err := ParseTrait(tt.input)
		if tt.hasError {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
	}
}

func TestTraitJSON(t *testing.T) {
	var people []Person
	err := json.Unmarshal([]byte(`[
		{"name":"Lily","trait":true},
		{"name":"James","trait":false},
		{"name":"Harry","mother":"Lily","father":"James","trait":null},
		{"name":"Petunia"}
	]`), &people)
	require.NoError(t, err)
	require.Len(t, people, 4)

	assert.Equal(t, TraitPresent, people[0].Trait)
	assert.Equal(t, TraitAbsent, people[1].Trait)
	assert.Equal(t, TraitUnknown, people[2].Trait)
	assert.Equal(t, TraitUnknown, people[3].Trait)
	require.NotNil(t, people[2].Mother)
	assert.Equal(t, core.PersonID("Lily"), *people[2].Mother)

	encoded, err := json.Marshal(people[2])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Harry","mother":"Lily","father":"James","trait":null}`, string(encoded))
}

func TestFamilyIndexPreservesInputOrder(t *testing.T) {
	f := potters()

	assert.Equal(t, 3, f.Len())
	for i, id := range []core.PersonID{"Harry", "James", "Lily"} {
		idx, ok := f.Index(id)
		require.True(t, ok)
		assert.Equal(t, i, idx)
		assert.Equal(t, id, f.At(i).ID)
	}

	_, ok := f.Get("Petunia")
	assert.False(t, ok)
}

func TestFamilyValidate(t *testing.T) {
	lily := core.PersonID("Lily")

	tests := []struct {
		name   string
		family *Family
		want   error
	}{
		{"well formed", potters(), nil},
		{"empty", NewFamily(), core.ErrEmptyPopulation},
		{"duplicate", NewFamily(NewFounder("Lily", TraitUnknown), NewFounder("Lily", TraitPresent)), core.ErrDuplicatePerson},
		{"single parent", NewFamily(
			Person{ID: "Harry", Mother: &lily},
			NewFounder("Lily", TraitUnknown),
		), core.ErrSingleParent},
		{"self parent", NewFamily(
			NewChild("Lily", "Lily", "James", TraitUnknown),
			NewFounder("James", TraitUnknown),
		), core.ErrSelfParent},
		{"dangling parent", NewFamily(
			NewChild("Harry", "Lily", "James", TraitUnknown),
			NewFounder("Lily", TraitUnknown),
		), core.ErrDanglingParent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.family.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, core.IsMalformedFamily(err))
		})
	}
}

func TestFingerprintIsStableAndSensitive(t *testing.T) {
	a := potters().Fingerprint()
	b := potters().Fingerprint()
	assert.Equal(t, a, b)

	changed := NewFamily(
		NewChild("Harry", "Lily", "James", TraitUnknown),
		NewFounder("James", TraitUnknown),
		NewFounder("Lily", TraitAbsent),
	)
	assert.NotEqual(t, a, changed.Fingerprint())
}
