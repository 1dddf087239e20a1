package jobs

import (
	"time"

	"wheelhub-backend/internal/config"
	"wheelhub-backend/internal/events"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals repository.RentalRepository
	events  events.Publisher
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(rentals repository.RentalRepository, publisher events.Publisher, cfg *config.Config) *JobRunner {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &JobRunner{
		rentals: rentals,
		events:  publisher,
		config:  cfg,
		now:     time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every rental lifecycle job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.CompleteFinishedRentals()
	jr.ActivateStartedRentals()
}
