package ports

import (
	"context"

	"heredity/domain/family"
)

// FamilyReader loads family records from an external source
type FamilyReader interface {
	// ReadFamily returns the validated family
	ReadFamily(ctx context.Context) (*family.Family, error)
}
