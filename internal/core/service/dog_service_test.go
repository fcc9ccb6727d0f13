package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dogwalk/marketplace/internal/core/domain"
	"github.com/dogwalk/marketplace/internal/core/ports"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func newDogFixture(t *testing.T) (*DogService, *stubUserRepo, *stubDogRepo, *stubJobRepo, *domain.User) {
	t.Helper()
	users := newStubUserRepo()
	dogs := newStubDogRepo()
	jobs := newStubJobRepo()

	owner, err := users.Create(context.Background(), &domain.User{Username: "owner", IsOwner: true})
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return NewDogService(dogs, users, jobs, zerolog.Nop()), users, dogs, jobs, owner
}

func TestDogService_Create(t *testing.T) {
	svc, _, _, _, owner := newDogFixture(t)

	dog, err := svc.Create(context.Background(), ports.CreateDogInput{OwnerID: owner.ID, Name: "Rex", Breed: "Labrador", Age: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dog.ID == "" || dog.OwnerID != owner.ID {
		t.Fatalf("unexpected dog: %+v", dog)
	}

	if _, err := svc.Create(context.Background(), ports.CreateDogInput{OwnerID: "user-missing", Name: "Ghost"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unknown owner: got %v, want ErrUserNotFound", err)
	}
}

func TestDogService_Update(t *testing.T) {
	svc, _, dogs, _, owner := newDogFixture(t)
	ctx := context.Background()

	dog, _ := svc.Create(ctx, ports.CreateDogInput{OwnerID: owner.ID, Name: "Rex", Breed: "Labrador", Age: 3})

	if err := svc.Update(ctx, owner.ID, dog.ID, ports.DogPatch{}); !errors.Is(err, domain.ErrEmptyUpdate) {
		t.Fatalf("empty patch: got %v, want ErrEmptyUpdate", err)
	}
	if err := svc.Update(ctx, owner.ID, "dog-missing", ports.DogPatch{Name: strPtr("Ghost")}); !errors.Is(err, domain.ErrDogNotFound) {
		t.Fatalf("unknown dog: got %v, want ErrDogNotFound", err)
	}

	if err := svc.Update(ctx, owner.ID, dog.ID, ports.DogPatch{Name: strPtr("Max"), Age: intPtr(4)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := dogs.FindByID(ctx, dog.ID)
	if got.Name != "Max" || got.Age != 4 || got.Breed != "Labrador" {
		t.Fatalf("partial update wrong: %+v", got)
	}
}

func TestDogService_Delete_BlockedByActiveJob(t *testing.T) {
	svc, _, dogs, jobs, owner := newDogFixture(t)
	ctx := context.Background()

	dog, _ := svc.Create(ctx, ports.CreateDogInput{OwnerID: owner.ID, Name: "Rex"})
	job, err := jobs.Create(ctx, &domain.Job{OwnerID: owner.ID, DogID: dog.ID, Status: domain.StatusPosted})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	if err := svc.Delete(ctx, owner.ID, dog.ID); !errors.Is(err, domain.ErrDogInUse) {
		t.Fatalf("delete with open job: got %v, want ErrDogInUse", err)
	}

	// Once every referencing job is paid the dog can go.
	if _, err := jobs.Transition(ctx, job.ID, []domain.JobStatus{domain.StatusPosted}, domain.StatusAccepted, "walker-1"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	_, _ = jobs.Transition(ctx, job.ID, []domain.JobStatus{domain.StatusAccepted}, domain.StatusCompleted, "")
	_, _ = jobs.Transition(ctx, job.ID, []domain.JobStatus{domain.StatusCompleted}, domain.StatusPaid, "")

	if err := svc.Delete(ctx, owner.ID, dog.ID); err != nil {
		t.Fatalf("delete after payout: %v", err)
	}
	if _, err := dogs.FindByID(ctx, dog.ID); !errors.Is(err, domain.ErrDogNotFound) {
		t.Fatalf("dog survived deletion: %v", err)
	}
}

func TestDogService_MutationsScopedToOwner(t *testing.T) {
	svc, users, dogs, _, owner := newDogFixture(t)
	ctx := context.Background()

	dog, _ := svc.Create(ctx, ports.CreateDogInput{OwnerID: owner.ID, Name: "Rex", Breed: "Labrador", Age: 3})
	mallory, _ := users.Create(ctx, &domain.User{Username: "mallory", IsOwner: true})

	// Reaching someone else's dog through your own collection reads as
	// absent, and the dog is untouched.
	if err := svc.Update(ctx, mallory.ID, dog.ID, ports.DogPatch{Name: strPtr("Stolen")}); !errors.Is(err, domain.ErrDogNotFound) {
		t.Fatalf("cross-owner patch: got %v, want ErrDogNotFound", err)
	}
	got, _ := dogs.FindByID(ctx, dog.ID)
	if got.Name != "Rex" {
		t.Fatalf("cross-owner patch mutated the dog: %+v", got)
	}

	if err := svc.Delete(ctx, mallory.ID, dog.ID); !errors.Is(err, domain.ErrDogNotFound) {
		t.Fatalf("cross-owner delete: got %v, want ErrDogNotFound", err)
	}
	if _, err := dogs.FindByID(ctx, dog.ID); err != nil {
		t.Fatalf("cross-owner delete removed the dog: %v", err)
	}

	// The real owner still can.
	if err := svc.Update(ctx, owner.ID, dog.ID, ports.DogPatch{Name: strPtr("Max")}); err != nil {
		t.Fatalf("owner patch: %v", err)
	}
	if err := svc.Delete(ctx, owner.ID, dog.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestDogService_ListByOwner(t *testing.T) {
	svc, users, _, _, owner := newDogFixture(t)
	ctx := context.Background()

	_, _ = svc.Create(ctx, ports.CreateDogInput{OwnerID: owner.ID, Name: "Rex"})
	_, _ = svc.Create(ctx, ports.CreateDogInput{OwnerID: owner.ID, Name: "Tess"})

	other, _ := users.Create(ctx, &domain.User{Username: "other", IsOwner: true})
	_, _ = svc.Create(ctx, ports.CreateDogInput{OwnerID: other.ID, Name: "Bo"})

	details, err := svc.ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 dogs, got %d", len(details))
	}
	for _, d := range details {
		if d.Owner.ID != owner.ID {
			t.Fatalf("wrong owner resolved: %+v", d.Owner)
		}
	}

	if _, err := svc.ListByOwner(ctx, "user-missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unknown owner: got %v, want ErrUserNotFound", err)
	}
}
