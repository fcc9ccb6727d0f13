package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dogwalk/marketplace/internal/core/domain"
	"github.com/dogwalk/marketplace/internal/core/ports"
)

// DogService implements dog CRUD plus the referential guard on deletion.
type DogService struct {
	dogs   ports.DogRepository
	users  ports.UserRepository
	jobs   ports.JobRepository
	logger zerolog.Logger
}

func NewDogService(dogs ports.DogRepository, users ports.UserRepository, jobs ports.JobRepository, logger zerolog.Logger) *DogService {
	return &DogService{dogs: dogs, users: users, jobs: jobs, logger: logger}
}

func (s *DogService) Create(ctx context.Context, input ports.CreateDogInput) (*domain.Dog, error) {
	if _, err := s.users.FindByID(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	dog := &domain.Dog{
		OwnerID: input.OwnerID,
		Name:    input.Name,
		Breed:   input.Breed,
		Age:     input.Age,
	}

	created, err := s.dogs.Create(ctx, dog)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("dog_id", created.ID).Str("owner_id", input.OwnerID).Msg("dog registered")
	return created, nil
}

func (s *DogService) Get(ctx context.Context, id string) (*ports.DogDetail, error) {
	dog, err := s.dogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.FindByID(ctx, dog.OwnerID)
	if err != nil {
		return nil, err
	}
	return &ports.DogDetail{Dog: dog, Owner: owner}, nil
}

func (s *DogService) ListByOwner(ctx context.Context, ownerID string) ([]*ports.DogDetail, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dogs, err := s.dogs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	details := make([]*ports.DogDetail, 0, len(dogs))
	for _, dog := range dogs {
		details = append(details, &ports.DogDetail{Dog: dog, Owner: owner})
	}
	return details, nil
}

func (s *DogService) Update(ctx context.Context, ownerID, id string, patch ports.DogPatch) error {
	if patch.IsEmpty() {
		return domain.ErrEmptyUpdate
	}
	if _, err := s.findOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.dogs.Update(ctx, id, patch)
}

// Delete refuses to remove a dog while any job that references it has not
// reached the paid state. A vanished dog would strand those jobs.
func (s *DogService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.findOwned(ctx, ownerID, id); err != nil {
		return err
	}

	active, err := s.jobs.CountActiveByDog(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrDogInUse
	}

	if err := s.dogs.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("dog_id", id).Msg("dog deleted")
	return nil
}

// findOwned loads a dog and pins it to the owner the request path named.
// A dog owned by someone else reads as absent, so a caller cannot reach
// another user's dog through their own collection.
func (s *DogService) findOwned(ctx context.Context, ownerID, id string) (*domain.Dog, error) {
	dog, err := s.dogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dog.OwnerID != ownerID {
		return nil, domain.ErrDogNotFound
	}
	return dog, nil
}
