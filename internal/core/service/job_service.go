package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/dogwalk/marketplace/internal/api/metrics"
	"github.com/dogwalk/marketplace/internal/core/domain"
	"github.com/dogwalk/marketplace/internal/core/ports"
)

// JobService implements the job lifecycle state machine. Identity and
// ownership checks always run before status checks, and the status check is
// re-applied atomically in the repository write, so a job observed as
// posted cannot be accepted twice by racing walkers.
type JobService struct {
	jobs   ports.JobRepository
	users  ports.UserRepository
	dogs   ports.DogRepository
	logger zerolog.Logger
}

func NewJobService(jobs ports.JobRepository, users ports.UserRepository, dogs ports.DogRepository, logger zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, users: users, dogs: dogs, logger: logger}
}

func (s *JobService) Post(ctx context.Context, input ports.PostJobInput) (*domain.Job, error) {
	dog, err := s.dogs.FindByID(ctx, input.DogID)
	if err != nil {
		return nil, err
	}
	if dog.OwnerID != input.OwnerID {
		return nil, domain.ErrDogNotOwned
	}

	job := &domain.Job{
		OwnerID:   input.OwnerID,
		DogID:     input.DogID,
		Status:    domain.StatusPosted,
		Pay:       input.Pay,
		Location:  input.Location,
		Deadline:  input.Deadline,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to post job")
		return nil, err
	}

	metrics.JobsCreatedTotal.Inc()
	s.logger.Info().Str("job_id", created.ID).Str("owner_id", input.OwnerID).Str("dog_id", input.DogID).Msg("job posted")
	return created, nil
}

func (s *JobService) Accept(ctx context.Context, jobID string, walker *domain.User) error {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if !job.Status.Acceptable() {
		return domain.ErrJobConflict
	}

	return s.transition(ctx, job, []domain.JobStatus{domain.StatusPosted, domain.StatusOverdue}, domain.StatusAccepted, walker.ID)
}

func (s *JobService) Complete(ctx context.Context, jobID string, walker *domain.User) error {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.WalkerID != walker.ID {
		return domain.ErrWrongUser
	}
	if job.Status != domain.StatusAccepted {
		return domain.ErrJobConflict
	}

	return s.transition(ctx, job, []domain.JobStatus{domain.StatusAccepted}, domain.StatusCompleted, "")
}

func (s *JobService) Pay(ctx context.Context, jobID string, owner *domain.User) error {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.OwnerID != owner.ID {
		return domain.ErrWrongUser
	}
	if job.Status != domain.StatusCompleted {
		return domain.ErrJobConflict
	}

	return s.transition(ctx, job, []domain.JobStatus{domain.StatusCompleted}, domain.StatusPaid, "")
}

func (s *JobService) Delete(ctx context.Context, jobID string, owner *domain.User) error {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.OwnerID != owner.ID {
		return domain.ErrWrongUser
	}
	if !job.Status.Deletable() {
		return domain.ErrJobConflict
	}

	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return err
	}
	s.logger.Info().Str("job_id", jobID).Str("owner_id", owner.ID).Msg("job deleted")
	return nil
}

func (s *JobService) Get(ctx context.Context, jobID string) (*ports.JobDetail, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, job)
}

func (s *JobService) List(ctx context.Context, filter ports.JobFilter) ([]*ports.JobDetail, error) {
	// When filtering by a related entity, the entity itself must exist;
	// an unknown owner/dog/walker id is a 404, not an empty list.
	switch {
	case filter.OwnerID != "":
		if _, err := s.users.FindByID(ctx, filter.OwnerID); err != nil {
			return nil, err
		}
	case filter.DogID != "":
		if _, err := s.dogs.FindByID(ctx, filter.DogID); err != nil {
			return nil, err
		}
	case filter.WalkerID != "":
		if _, err := s.users.FindByID(ctx, filter.WalkerID); err != nil {
			return nil, err
		}
	}

	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	details := make([]*ports.JobDetail, 0, len(jobs))
	for _, job := range jobs {
		detail, err := s.resolve(ctx, job)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// transition applies the conditional status write and records the outcome.
// A write that matches nothing means another caller moved the job first.
func (s *JobService) transition(ctx context.Context, job *domain.Job, from []domain.JobStatus, to domain.JobStatus, walkerID string) error {
	ok, err := s.jobs.Transition(ctx, job.ID, from, to, walkerID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return domain.ErrJobConflict
		}
		return err
	}
	if !ok {
		return domain.ErrJobConflict
	}

	metrics.JobTransitionsTotal.WithLabelValues(string(job.Status), string(to)).Inc()
	s.logger.Info().
		Str("job_id", job.ID).
		Str("from", string(job.Status)).
		Str("to", string(to)).
		Msg("job transitioned")
	return nil
}

// resolve loads the rows a job response embeds. The walker lookup is
// tolerant: an unassigned or since-deleted walker leaves the field nil
// rather than failing the whole read.
func (s *JobService) resolve(ctx context.Context, job *domain.Job) (*ports.JobDetail, error) {
	owner, err := s.users.FindByID(ctx, job.OwnerID)
	if err != nil {
		return nil, err
	}
	dog, err := s.dogs.FindByID(ctx, job.DogID)
	if err != nil {
		return nil, err
	}

	var walker *domain.User
	if job.WalkerID != "" {
		if w, err := s.users.FindByID(ctx, job.WalkerID); err == nil {
			walker = w
		}
	}

	return &ports.JobDetail{Job: job, Owner: owner, Dog: dog, Walker: walker}, nil
}
