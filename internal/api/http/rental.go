package http

import (
	"net/http"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type updateStatusRequest struct {
	Status domain.RentalStatus `json:"status"`
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := queryInt32(r, "page", 1), queryInt32(r, "page_size", 20)
	rentals, total, err := h.rentalSvc.ListMyRentals(r.Context(), GetUserIDFromContext(r.Context()), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Rental]{Items: rentals, Total: total, Page: page, PageSize: pageSize})
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rt, err := h.rentalSvc.GetRental(r.Context(), GetUserIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rt, err := h.rentalSvc.CancelRental(r.Context(), GetUserIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) ListShopBookings(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := queryInt32(r, "page", 1), queryInt32(r, "page_size", 20)
	rentals, total, err := h.rentalSvc.ListShopBookings(r.Context(), GetUserIDFromContext(r.Context()), shopID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Rental]{Items: rentals, Total: total, Page: page, PageSize: pageSize})
}

func (h *RentalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	rt, err := h.rentalSvc.UpdateBookingStatus(r.Context(), GetUserIDFromContext(r.Context()), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}
