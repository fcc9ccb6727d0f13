package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/dogwalk/marketplace/internal/core/domain"
	"github.com/dogwalk/marketplace/internal/core/ports"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if patch.IsOwner != nil {
		u.IsOwner = *patch.IsOwner
	}
	if patch.IsWalker != nil {
		u.IsWalker = *patch.IsWalker
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubDogRepo struct {
	mu   sync.Mutex
	seq  int
	dogs map[string]*domain.Dog
}

func newStubDogRepo() *stubDogRepo {
	return &stubDogRepo{dogs: make(map[string]*domain.Dog)}
}

func cloneDog(d *domain.Dog) *domain.Dog {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}

func (r *stubDogRepo) Create(_ context.Context, dog *domain.Dog) (*domain.Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := cloneDog(dog)
	copy.ID = fmt.Sprintf("dog-%d", r.seq)
	r.dogs[copy.ID] = copy
	return cloneDog(copy), nil
}

func (r *stubDogRepo) FindByID(_ context.Context, id string) (*domain.Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dogs[id]
	if !ok {
		return nil, domain.ErrDogNotFound
	}
	return cloneDog(d), nil
}

func (r *stubDogRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Dog
	for _, d := range r.dogs {
		if d.OwnerID == ownerID {
			out = append(out, cloneDog(d))
		}
	}
	return out, nil
}

func (r *stubDogRepo) Update(_ context.Context, id string, patch ports.DogPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dogs[id]
	if !ok {
		return domain.ErrDogNotFound
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Breed != nil {
		d.Breed = *patch.Breed
	}
	if patch.Age != nil {
		d.Age = *patch.Age
	}
	return nil
}

func (r *stubDogRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dogs[id]; !ok {
		return domain.ErrDogNotFound
	}
	delete(r.dogs, id)
	return nil
}

type stubJobRepo struct {
	mu   sync.Mutex
	seq  int
	jobs map[string]*domain.Job
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func cloneJob(j *domain.Job) *domain.Job {
	if j == nil {
		return nil
	}
	clone := *j
	return &clone
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := cloneJob(job)
	copy.ID = fmt.Sprintf("job-%d", r.seq)
	r.jobs[copy.ID] = copy
	return cloneJob(copy), nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) List(_ context.Context, filter ports.JobFilter) ([]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Job
	for _, j := range r.jobs {
		switch {
		case filter.OwnerID != "" && j.OwnerID != filter.OwnerID:
		case filter.DogID != "" && j.DogID != filter.DogID:
		case filter.WalkerID != "" && j.WalkerID != filter.WalkerID:
		case filter.Status != "" && j.Status != filter.Status:
		default:
			out = append(out, cloneJob(j))
		}
	}
	return out, nil
}

// Transition mirrors the conditional write of the Mongo repository: the
// status check and the update happen under one lock.
func (r *stubJobRepo) Transition(_ context.Context, id string, from []domain.JobStatus, to domain.JobStatus, walkerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return false, domain.ErrJobNotFound
	}
	matched := false
	for _, s := range from {
		if j.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	j.Status = to
	if walkerID != "" {
		j.WalkerID = walkerID
	}
	return true, nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *stubJobRepo) CountActiveByDog(_ context.Context, dogID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, j := range r.jobs {
		if j.DogID == dogID && j.Status != domain.StatusPaid {
			n++
		}
	}
	return n, nil
}

func (r *stubJobRepo) MarkOverdue(_ context.Context, now int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, j := range r.jobs {
		if j.Status == domain.StatusPosted && j.Deadline > 0 && j.Deadline <= now {
			j.Status = domain.StatusOverdue
			n++
		}
	}
	return n, nil
}
