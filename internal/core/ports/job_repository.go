package ports

import (
	"context"

	"github.com/dogwalk/marketplace/internal/core/domain"
)

// JobFilter selects jobs by exactly one dimension. The HTTP layer enforces
// that only one field is populated per request.
type JobFilter struct {
	OwnerID  string
	DogID    string
	WalkerID string
	Status   domain.JobStatus
}

// JobRepository defines persistence operations for jobs.
//
// Transition is the serialization point for the state machine: the update is
// conditional on the job still being in one of the expected statuses, so two
// concurrent transitions on the same job cannot both succeed.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]*domain.Job, error)
	// Transition moves job id to status to, provided its current status is
	// one of from. A non-empty walkerID is assigned in the same write.
	// Returns false when the job exists but was not in an expected status.
	Transition(ctx context.Context, id string, from []domain.JobStatus, to domain.JobStatus, walkerID string) (bool, error)
	Delete(ctx context.Context, id string) error
	// CountActiveByDog counts jobs referencing the dog that are not yet paid.
	CountActiveByDog(ctx context.Context, dogID string) (int64, error)
	// MarkOverdue flips posted jobs whose deadline is at or before now (unix
	// seconds) to overdue, returning the number of jobs updated.
	MarkOverdue(ctx context.Context, now int64) (int64, error)
}
