package ports

import (
	"context"

	"github.com/dogwalk/marketplace/internal/core/domain"
)

// DogPatch is an explicit field-set for partial dog updates.
type DogPatch struct {
	Name  *string
	Breed *string
	Age   *int
}

// IsEmpty reports whether the patch names no fields.
func (p DogPatch) IsEmpty() bool {
	return p.Name == nil && p.Breed == nil && p.Age == nil
}

// DogRepository defines persistence operations for dogs.
type DogRepository interface {
	Create(ctx context.Context, dog *domain.Dog) (*domain.Dog, error)
	FindByID(ctx context.Context, id string) (*domain.Dog, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Dog, error)
	Update(ctx context.Context, id string, patch DogPatch) error
	Delete(ctx context.Context, id string) error
}
