package reconcile

import (
	"errors"

	"wheelhub-backend/internal/domain"
)

// UserMessage converts a reconciliation failure into the notification shown
// to the user. Order matters: the more specific causes are wrapped inside the
// generic taxonomy errors.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return "Booking confirmed."
	case errors.Is(err, domain.ErrNoDraft):
		return "No booking is in progress. Please start your booking again."
	case errors.Is(err, domain.ErrCorrelationMismatch):
		return "Booking mismatch, please contact support."
	case errors.Is(err, domain.ErrDecode):
		return "We could not read the payment response. Please contact support."
	case errors.Is(err, domain.ErrGatewayRejected):
		return "Payment was not completed. Your booking was not created."
	case errors.Is(err, domain.ErrVehicleUnavailable):
		return "This vehicle is no longer available for the selected dates."
	case errors.Is(err, domain.ErrDuplicateBooking):
		return "This payment has already been used for a booking."
	case errors.Is(err, domain.ErrBookingCreateFailed):
		return "The booking could not be created. Please contact support."
	case errors.Is(err, domain.ErrDraftStore):
		return "We could not start your booking. Please try again."
	case errors.Is(err, domain.ErrValidation):
		return "The booking request is invalid."
	default:
		return "Something went wrong with your booking. Please contact support."
	}
}
