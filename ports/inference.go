package ports

import (
	"context"

	"heredity/domain/family"
	"heredity/domain/genetics"
)

// InferencePort computes posterior distributions for a family
type InferencePort interface {
	Run(ctx context.Context, fam *family.Family) (*genetics.Result, error)
}
