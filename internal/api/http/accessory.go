package http

import (
	"net/http"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/service"
)

type AccessoryHandler struct {
	accessorySvc service.AccessoryService
}

func NewAccessoryHandler(accessorySvc service.AccessoryService) *AccessoryHandler {
	return &AccessoryHandler{accessorySvc: accessorySvc}
}

func (h *AccessoryHandler) List(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	items, err := h.accessorySvc.ListShopAccessories(r.Context(), shopID)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.Accessory{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *AccessoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var a domain.Accessory
	if err := decodeJSON(w, r, &a); err != nil {
		writeError(w, err)
		return
	}
	if err := h.accessorySvc.AddAccessory(r.Context(), GetUserIDFromContext(r.Context()), shopID, &a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &a)
}

func (h *AccessoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var a domain.Accessory
	if err := decodeJSON(w, r, &a); err != nil {
		writeError(w, err)
		return
	}
	a.ID = id
	if err := h.accessorySvc.UpdateAccessory(r.Context(), GetUserIDFromContext(r.Context()), &a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &a)
}

func (h *AccessoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.accessorySvc.DeleteAccessory(r.Context(), GetUserIDFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "accessory deleted")
}
