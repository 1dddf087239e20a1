package domain

import "errors"

// Reconciliation failures. None of them are retried.
var (
	ErrNoDraft             = errors.New("no staged booking")
	ErrDecode              = errors.New("malformed payment response")
	ErrGatewayRejected     = errors.New("payment not completed")
	ErrCorrelationMismatch = errors.New("booking mismatch")
	ErrBookingCreateFailed = errors.New("booking could not be created")
)

var (
	ErrAmountMismatch     = errors.New("paid amount does not match booking total")
	ErrDuplicateBooking   = errors.New("booking already exists for this payment")
	ErrDraftStore         = errors.New("booking could not be staged")
	ErrVehicleUnavailable = errors.New("vehicle is not available for the selected dates")
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
)
