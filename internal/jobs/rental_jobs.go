package jobs

import (
	"context"
	"fmt"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/events"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/utils"
)

// ActivateStartedRentals moves CONFIRMED rentals whose start date has come to ACTIVE
func (jr *JobRunner) ActivateStartedRentals() {
	jr.runWithRecovery("ActivateStartedRentals", func() {
		ctx := context.Background()
		today := jr.now().UTC().Format(utils.DateLayout)

		ids, err := jr.rentals.ActivateStarted(ctx, today)
		if err != nil {
			logger.Error("Failed to activate started rentals", "error", err)
			return
		}
		logger.Info("Activated started rentals", "count", len(ids), "as_of", today)
		jr.publish(ctx, ids, domain.RentalStatusConfirmed, domain.RentalStatusActive)
	})
}

// CompleteFinishedRentals moves ACTIVE rentals whose end date has passed to COMPLETED
func (jr *JobRunner) CompleteFinishedRentals() {
	jr.runWithRecovery("CompleteFinishedRentals", func() {
		ctx := context.Background()
		today := jr.now().UTC().Format(utils.DateLayout)

		ids, err := jr.rentals.CompleteFinished(ctx, today)
		if err != nil {
			logger.Error("Failed to complete finished rentals", "error", err)
			return
		}
		logger.Info("Completed finished rentals", "count", len(ids), "as_of", today)
		jr.publish(ctx, ids, domain.RentalStatusActive, domain.RentalStatusCompleted)
	})
}

func (jr *JobRunner) publish(ctx context.Context, ids []int32, from, to domain.RentalStatus) {
	for _, id := range ids {
		payload := events.RentalStatusPayload{RentalID: id, From: string(from), To: string(to)}
		if err := jr.events.Publish(ctx, events.EventRentalStatusChanged, fmt.Sprintf("rental-%d", id), payload); err != nil {
			logger.Warn("Failed to publish rental status event", "rental_id", id, "error", err)
		}
	}
}
