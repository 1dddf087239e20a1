package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wheelhub-backend/internal/config"
	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/events"
	"wheelhub-backend/internal/repository"
)

type mockRentalRepo struct {
	mock.Mock
	repository.RentalRepository
}

func (m *mockRentalRepo) ActivateStarted(ctx context.Context, asOf string) ([]int32, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}

func (m *mockRentalRepo) CompleteFinished(ctx context.Context, asOf string) ([]int32, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, eventType, correlationID string, payload any) error {
	return m.Called(ctx, eventType, correlationID, payload).Error(0)
}

func newTestRunner(repo *mockRentalRepo, pub *mockPublisher) *JobRunner {
	jr := NewJobRunner(repo, pub, &config.Config{})
	jr.now = func() time.Time { return time.Date(2026, 3, 5, 23, 30, 0, 0, time.UTC) }
	return jr
}

func TestActivateStartedRentals(t *testing.T) {
	repo := new(mockRentalRepo)
	pub := new(mockPublisher)
	jr := newTestRunner(repo, pub)

	repo.On("ActivateStarted", mock.Anything, "2026-03-05").Return([]int32{4, 9}, nil).Once()
	pub.On("Publish", mock.Anything, events.EventRentalStatusChanged, "rental-4", events.RentalStatusPayload{
		RentalID: 4, From: string(domain.RentalStatusConfirmed), To: string(domain.RentalStatusActive),
	}).Return(nil).Once()
	pub.On("Publish", mock.Anything, events.EventRentalStatusChanged, "rental-9", mock.Anything).Return(errors.New("broker down")).Once()

	jr.ActivateStartedRentals()
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCompleteFinishedRentals(t *testing.T) {
	t.Run("Nothing to do", func(t *testing.T) {
		repo := new(mockRentalRepo)
		pub := new(mockPublisher)
		repo.On("CompleteFinished", mock.Anything, "2026-03-05").Return([]int32{}, nil).Once()

		newTestRunner(repo, pub).CompleteFinishedRentals()
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Database error", func(t *testing.T) {
		repo := new(mockRentalRepo)
		pub := new(mockPublisher)
		repo.On("CompleteFinished", mock.Anything, "2026-03-05").Return(nil, errors.New("connection reset")).Once()

		newTestRunner(repo, pub).CompleteFinishedRentals()
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRunWithRecovery(t *testing.T) {
	jr := NewJobRunner(nil, nil, &config.Config{})
	assert.NotPanics(t, func() {
		jr.runWithRecovery("boom", func() { panic("unexpected") })
	})
}
