// Package sweep runs the background pass that moves posted jobs past their
// deadline into the overdue state, from where walkers may still accept them.
package sweep

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/dogwalk/marketplace/internal/api/metrics"
	"github.com/dogwalk/marketplace/internal/core/ports"
)

const defaultSchedule = "@every 1m"

// Sweeper periodically marks deadline-elapsed posted jobs as overdue.
type Sweeper struct {
	jobs     ports.JobRepository
	schedule string
	logger   zerolog.Logger
	cron     *cron.Cron
}

// New returns a Sweeper on the given cron schedule. An empty schedule runs
// every minute.
func New(jobs ports.JobRepository, schedule string, logger zerolog.Logger) *Sweeper {
	if schedule == "" {
		schedule = defaultSchedule
	}
	return &Sweeper{jobs: jobs, schedule: schedule, logger: logger}
}

// Start launches the cron loop. The first sweep happens one interval in.
func (s *Sweeper) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.Run); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Run executes a single sweep. Exported so a deployment without the cron
// loop can trigger it on its own cadence.
func (s *Sweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := s.jobs.MarkOverdue(ctx, time.Now().Unix())
	if err != nil {
		s.logger.Error().Err(err).Msg("overdue sweep failed")
		return
	}
	if n > 0 {
		metrics.JobsMarkedOverdueTotal.Add(float64(n))
		s.logger.Info().Int64("jobs", n).Msg("jobs marked overdue")
	}
}
