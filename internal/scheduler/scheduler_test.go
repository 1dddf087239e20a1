package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheelhub-backend/internal/config"
	"wheelhub-backend/internal/jobs"
)

func TestNewScheduler(t *testing.T) {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{
		ActivateStartedRentals:  "0 5 0 * * *",
		CompleteFinishedRentals: "0 0 0 * * *",
	}}
	s, err := NewScheduler(jobs.NewJobRunner(nil, nil, cfg))
	require.NoError(t, err)
	assert.True(t, s.IsRunning())
	assert.Len(t, s.cron.Entries(), 2)

	cfg.Scheduler.ActivateStartedRentals = "every now and then"
	_, err = NewScheduler(jobs.NewJobRunner(nil, nil, cfg))
	assert.Error(t, err)
}
