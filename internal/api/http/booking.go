package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/draft"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/payment"
	"wheelhub-backend/internal/reconcile"
	"wheelhub-backend/internal/service"
)

// BookingReconciler is the part of *reconcile.Reconciler the handlers drive.
type BookingReconciler interface {
	Begin(ctx context.Context, key string, d *domain.RentalDraft) *reconcile.Outcome
	HandleCallback(ctx context.Context, key string, method domain.PaymentMethod, params payment.CallbackParams) *reconcile.Outcome
	Abandon(ctx context.Context, key string) *reconcile.Outcome
	Pending(ctx context.Context, key string) (*domain.RentalDraft, error)
}

type BookingHandler struct {
	rentalSvc service.RentalService
	bookings  BookingReconciler
}

func NewBookingHandler(rentalSvc service.RentalService, bookings BookingReconciler) *BookingHandler {
	return &BookingHandler{rentalSvc: rentalSvc, bookings: bookings}
}

type createBookingRequest struct {
	VehicleID       int32                `json:"vehicle_id"`
	StartDate       string               `json:"start_date"`
	EndDate         string               `json:"end_date"`
	Quantity        int32                `json:"quantity"`
	PaymentMethod   domain.PaymentMethod `json:"payment_method"`
	Notes           string               `json:"notes"`
	VendorInitiated bool                 `json:"vendor_initiated"`
}

func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	quote, err := h.rentalSvc.Quote(r.Context(), id, q.Get("start_date"), q.Get("end_date"), queryInt32(r, "quantity", 1))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// Create confirms a booking. The price is always quoted here, never taken
// from the client.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := ClaimsFromContext(ctx)

	var req createBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.VendorInitiated && !claims.IsVendor() {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	quote, err := h.rentalSvc.Quote(ctx, req.VehicleID, req.StartDate, req.EndDate, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}

	d := &domain.RentalDraft{
		VehicleID:       req.VehicleID,
		RenterID:        claims.UserID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Quantity:        quote.Quantity,
		TotalPricePaisa: quote.TotalPaisa,
		PaymentMethod:   req.PaymentMethod,
		Notes:           strings.TrimSpace(req.Notes),
		VendorInitiated: req.VendorInitiated,
	}
	writeOutcome(w, h.bookings.Begin(ctx, draft.Key(claims.UserID), d))
}

func (h *BookingHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.bookings.Pending(r.Context(), draft.Key(GetUserIDFromContext(r.Context())))
	if err != nil {
		writeError(w, err)
		return
	}
	if d == nil {
		writeMessage(w, http.StatusNotFound, reconcile.UserMessage(domain.ErrNoDraft))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Abandon handles the gateway failure URL and explicit cancellation alike.
func (h *BookingHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	out := h.bookings.Abandon(r.Context(), draft.Key(GetUserIDFromContext(r.Context())))
	if errors.Is(out.Err, domain.ErrNoDraft) {
		writeJSON(w, http.StatusNotFound, out)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Callback accepts the parameters the gateway appended to the success URL,
// forwarded by the client as query, form or JSON.
func (h *BookingHandler) Callback(w http.ResponseWriter, r *http.Request) {
	method := domain.PaymentMethod(mux.Vars(r)["method"])
	params, err := callbackParams(r)
	if err != nil {
		// Unreadable input still ends the staged booking; the adapter
		// rejects the empty parameter set as a decode failure.
		logger.Warn("Unreadable payment callback", "method", method, "error", err)
		params = payment.CallbackParams{}
	}
	out := h.bookings.HandleCallback(r.Context(), draft.Key(GetUserIDFromContext(r.Context())), method, params)
	writeOutcome(w, out)
}

func callbackParams(r *http.Request) (payment.CallbackParams, error) {
	params := payment.CallbackParams{}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var body map[string]string
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&body); err != nil {
			return nil, fmt.Errorf("%w: callback body must be a flat JSON object", domain.ErrDecode)
		}
		for k, v := range body {
			params[k] = v
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: unreadable callback parameters", domain.ErrDecode)
	}
	for k, v := range r.Form {
		if _, set := params[k]; !set && len(v) > 0 {
			params[k] = v[0]
		}
	}
	for k, v := range r.URL.Query() {
		if _, set := params[k]; !set && len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params, nil
}
