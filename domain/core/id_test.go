package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

// TestParsePersonID tests person ID parsing
func TestParsePersonID(t *testing.T) {
	tests := []struct {
		input    string
		expected PersonID
		hasError bool
	}{
		{"Harry", PersonID("Harry"), false},
		{"  Lily ", PersonID("Lily"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParsePersonID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	valid := NewRunID()
	if _, err := ParseRunID(valid.String()); err != nil {
		t.Errorf("Unexpected error for generated run ID: %v", err)
	}
	if _, err := ParseRunID("not-a-uuid"); err == nil {
		t.Error("Expected error for non-UUID run ID")
	}
	if _, err := ParseRunID(""); err == nil {
		t.Error("Expected error for empty run ID")
	}
}

func TestFamilyErrorsUnwrapToMalformed(t *testing.T) {
	for _, kind := range []error{ErrEmptyPopulation, ErrDuplicatePerson, ErrSingleParent, ErrSelfParent, ErrDanglingParent} {
		err := NewFamilyError(kind, "Harry", "")
		if !IsMalformedFamily(err) {
			t.Errorf("Expected %v to be a malformed family error", err)
		}
		if !errors.Is(err, kind) {
			t.Errorf("Expected %v to wrap %v", err, kind)
		}
	}
	if IsMalformedFamily(ErrNoConsistentHypothesis) {
		t.Error("Contradictory evidence is not a malformed family")
	}
}

func TestHashShort(t *testing.T) {
	h := NewHash([]byte("James,Lily"))
	if len(h) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(h))
	}
	if h.Short() != string(h[:12]) {
		t.Errorf("Expected short prefix, got %s", h.Short())
	}
}
