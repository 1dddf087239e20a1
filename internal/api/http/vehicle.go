package http

import (
	"net/http"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/service"
)

type VehicleHandler struct {
	vehicleSvc service.VehicleService
	shopSvc    service.ShopService
}

func NewVehicleHandler(vehicleSvc service.VehicleService, shopSvc service.ShopService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc, shopSvc: shopSvc}
}

// Search lists available vehicles inside the visible map rectangle.
func (h *VehicleHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := domain.VehicleFilter{
		Type:     domain.VehicleType(r.URL.Query().Get("type")),
		Page:     queryInt32(r, "page", 1),
		PageSize: queryInt32(r, "page_size", 20),
	}
	minLat, ok1 := queryFloat(r, "min_lat")
	maxLat, ok2 := queryFloat(r, "max_lat")
	minLng, ok3 := queryFloat(r, "min_lng")
	maxLng, ok4 := queryFloat(r, "max_lng")
	if ok1 && ok2 && ok3 && ok4 {
		filter.Bounds = domain.Bounds{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
	}

	vehicles, total, err := h.vehicleSvc.SearchVehicles(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Vehicle]{Items: vehicles, Total: total, Page: filter.Page, PageSize: filter.PageSize})
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := h.vehicleSvc.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var v domain.Vehicle
	if err := decodeJSON(w, r, &v); err != nil {
		writeError(w, err)
		return
	}
	if err := h.vehicleSvc.AddVehicle(r.Context(), GetUserIDFromContext(r.Context()), shopID, &v); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &v)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var v domain.Vehicle
	if err := decodeJSON(w, r, &v); err != nil {
		writeError(w, err)
		return
	}
	v.ID = id
	if err := h.vehicleSvc.UpdateVehicle(r.Context(), GetUserIDFromContext(r.Context()), &v); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &v)
}

func (h *VehicleHandler) CreateShop(w http.ResponseWriter, r *http.Request) {
	var shop domain.Shop
	if err := decodeJSON(w, r, &shop); err != nil {
		writeError(w, err)
		return
	}
	if err := h.shopSvc.CreateShop(r.Context(), GetUserIDFromContext(r.Context()), &shop); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &shop)
}

func (h *VehicleHandler) ListShops(w http.ResponseWriter, r *http.Request) {
	shops, err := h.shopSvc.ListMyShops(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shops)
}
