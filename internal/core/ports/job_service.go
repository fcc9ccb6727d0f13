package ports

import (
	"context"

	"github.com/dogwalk/marketplace/internal/core/domain"
)

// PostJobInput carries all data needed to post a new job.
type PostJobInput struct {
	OwnerID  string
	DogID    string
	Pay      float64
	Location domain.Coordinates
	// Deadline is a unix timestamp in seconds; zero means none.
	Deadline int64
}

// JobDetail is a job with its related rows resolved for assembly. Walker is
// nil until the job has been accepted.
type JobDetail struct {
	Job    *domain.Job
	Owner  *domain.User
	Dog    *domain.Dog
	Walker *domain.User
}

// JobService defines the job lifecycle operations. The caller identity
// checks run before the state checks, so an unauthorized caller never
// learns the job's current status from the error.
type JobService interface {
	Post(ctx context.Context, input PostJobInput) (*domain.Job, error)
	// Accept assigns the job to walker. Allowed from posted and overdue.
	Accept(ctx context.Context, jobID string, walker *domain.User) error
	// Complete is restricted to the assigned walker. Allowed from accepted.
	Complete(ctx context.Context, jobID string, walker *domain.User) error
	// Pay is restricted to the owning user. Allowed from completed.
	Pay(ctx context.Context, jobID string, owner *domain.User) error
	// Delete is restricted to the owning user. Allowed from posted and
	// overdue; an accepted or later job can only be progressed.
	Delete(ctx context.Context, jobID string, owner *domain.User) error
	Get(ctx context.Context, jobID string) (*JobDetail, error)
	List(ctx context.Context, filter JobFilter) ([]*JobDetail, error)
}
