package ports

import (
	"context"

	"github.com/dogwalk/marketplace/internal/core/domain"
)

// CreateDogInput carries the data needed to register a dog under an owner.
type CreateDogInput struct {
	OwnerID string
	Name    string
	Breed   string
	Age     int
}

// DogDetail is a dog with its owner resolved for assembly.
type DogDetail struct {
	Dog   *domain.Dog
	Owner *domain.User
}

// DogService defines dog CRUD operations. Reads are public; mutations are
// scoped to the owner named in the path, so a dog reached through another
// user's collection reads as absent.
type DogService interface {
	Create(ctx context.Context, input CreateDogInput) (*domain.Dog, error)
	Get(ctx context.Context, id string) (*DogDetail, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*DogDetail, error)
	// Update patches a dog belonging to ownerID. A dog owned by anyone
	// else fails with domain.ErrDogNotFound.
	Update(ctx context.Context, ownerID, id string, patch DogPatch) error
	// Delete removes a dog belonging to ownerID, refusing while a
	// non-terminal job references it.
	Delete(ctx context.Context, ownerID, id string) error
}
