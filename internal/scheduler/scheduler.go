package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"wheelhub-backend/internal/jobs"
	"wheelhub-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	// Complete before activating so a one-day turnaround frees the unit first
	if _, err := s.cron.AddFunc(cfg.CompleteFinishedRentals, s.jobs.CompleteFinishedRentals); err != nil {
		logger.Error("Failed to register CompleteFinishedRentals job", "spec", cfg.CompleteFinishedRentals, "error", err)
		return err
	}

	if _, err := s.cron.AddFunc(cfg.ActivateStartedRentals, s.jobs.ActivateStartedRentals); err != nil {
		logger.Error("Failed to register ActivateStartedRentals job", "spec", cfg.ActivateStartedRentals, "error", err)
		return err
	}

	logger.Info("All cron jobs registered successfully", "count", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
