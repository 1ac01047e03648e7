package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: inference run", ErrNotFound)

	// Family integrity errors
	ErrMalformedFamily = errors.New("malformed family")
	ErrEmptyPopulation = fmt.Errorf("%w: population is empty", ErrMalformedFamily)
	ErrDuplicatePerson = fmt.Errorf("%w: duplicate person", ErrMalformedFamily)
	ErrSingleParent    = fmt.Errorf("%w: exactly one parent recorded", ErrMalformedFamily)
	ErrSelfParent      = fmt.Errorf("%w: person is their own parent", ErrMalformedFamily)
	ErrDanglingParent  = fmt.Errorf("%w: parent not in population", ErrMalformedFamily)

	// Inference errors
	ErrNoConsistentHypothesis = errors.New("no hypothesis consistent with evidence")
	ErrPopulationTooLarge     = errors.New("population too large for exact enumeration")
	ErrInvalidTables          = errors.New("invalid conditional probability tables")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewFamilyError attaches the offending person to a family integrity sentinel
func NewFamilyError(kind error, person PersonID, detail string) error {
	if detail == "" {
		return fmt.Errorf("%w (person %q)", kind, person)
	}
	return fmt.Errorf("%w (person %q): %s", kind, person, detail)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsMalformedFamily(err error) bool {
	return errors.Is(err, ErrMalformedFamily)
}

// IsInferenceError reports errors that come from the data being unanswerable
// rather than malformed
func IsInferenceError(err error) bool {
	return errors.Is(err, ErrNoConsistentHypothesis) ||
		errors.Is(err, ErrPopulationTooLarge) ||
		errors.Is(err, ErrInvalidTables)
}
