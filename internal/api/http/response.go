package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/reconcile"
)

type errorResponse struct {
	Message string `json:"message"`
}

type listResponse[T any] struct {
	Items    []T   `json:"items"`
	Total    int32 `json:"total"`
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: msg})
}

// writeError maps domain errors onto HTTP statuses. Internal failures are
// logged and hidden from the caller.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		msg = "internal server error"
	}
	writeMessage(w, status, msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoDraft):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrDuplicateBooking),
		errors.Is(err, domain.ErrVehicleUnavailable),
		errors.Is(err, domain.ErrCorrelationMismatch):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrGatewayRejected):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrDraftStore):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeOutcome renders a reconciliation result. Failures keep the outcome body
// so the client can show the user message.
func writeOutcome(w http.ResponseWriter, out *reconcile.Outcome) {
	status := http.StatusOK
	switch {
	case out.State == reconcile.StateAwaitingGateway:
		status = http.StatusAccepted
	case out.Succeeded():
		status = http.StatusCreated
	case out.Err != nil:
		status = statusFor(out.Err)
		if status == http.StatusInternalServerError {
			logger.Error("Booking failed", "correlation_id", out.CorrelationID, "error", out.Err)
		}
	}
	writeJSON(w, status, out)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	return nil
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrValidation, name)
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string, def int32) int32 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 32)
	if err != nil {
		return def
	}
	return int32(v)
}

func queryFloat(r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, err == nil
}
