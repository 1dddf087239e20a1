package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"wheelhub-backend/internal/security"
)

type Handlers struct {
	Auth        *AuthHandler
	Vehicles    *VehicleHandler
	Bookings    *BookingHandler
	Rentals     *RentalHandler
	Accessories *AccessoryHandler
}

// NewRouter names every route after its entry in config.EndpointSecurityConfig;
// the auth middleware resolves the security level from that name.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusOK, "ok")
	}).Methods(http.MethodGet).Name("health")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(RecoveryMiddleware, LoggingMiddleware, NewAuthMiddleware(tokens).Handler)

	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost).Name("auth.register")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/users/me/device-token", h.Auth.UpdateDeviceToken).Methods(http.MethodPut).Name("users.device_token")

	api.HandleFunc("/vehicles", h.Vehicles.Search).Methods(http.MethodGet).Name("vehicles.search")
	api.HandleFunc("/vehicles/{id:[0-9]+}", h.Vehicles.Get).Methods(http.MethodGet).Name("vehicles.get")
	api.HandleFunc("/vehicles/{id:[0-9]+}/quote", h.Bookings.Quote).Methods(http.MethodGet).Name("vehicles.quote")
	api.HandleFunc("/vehicles/{id:[0-9]+}", h.Vehicles.Update).Methods(http.MethodPut).Name("vehicles.update")

	api.HandleFunc("/bookings", h.Bookings.Create).Methods(http.MethodPost).Name("bookings.create")
	api.HandleFunc("/bookings/draft", h.Bookings.GetDraft).Methods(http.MethodGet).Name("bookings.draft.get")
	api.HandleFunc("/bookings/draft", h.Bookings.Abandon).Methods(http.MethodDelete).Name("bookings.draft.abandon")
	api.HandleFunc("/payments/{method}/callback", h.Bookings.Callback).Methods(http.MethodPost, http.MethodGet).Name("payments.callback")

	api.HandleFunc("/rentals", h.Rentals.List).Methods(http.MethodGet).Name("rentals.list")
	api.HandleFunc("/rentals/{id:[0-9]+}", h.Rentals.Get).Methods(http.MethodGet).Name("rentals.get")
	api.HandleFunc("/rentals/{id:[0-9]+}/cancel", h.Rentals.Cancel).Methods(http.MethodPost).Name("rentals.cancel")
	api.HandleFunc("/rentals/{id:[0-9]+}/status", h.Rentals.UpdateStatus).Methods(http.MethodPut).Name("rentals.status.update")

	api.HandleFunc("/shops", h.Vehicles.CreateShop).Methods(http.MethodPost).Name("shops.create")
	api.HandleFunc("/shops", h.Vehicles.ListShops).Methods(http.MethodGet).Name("shops.list")
	api.HandleFunc("/shops/{id:[0-9]+}/vehicles", h.Vehicles.Create).Methods(http.MethodPost).Name("shops.vehicles.create")
	api.HandleFunc("/shops/{id:[0-9]+}/bookings", h.Rentals.ListShopBookings).Methods(http.MethodGet).Name("shops.bookings.list")
	api.HandleFunc("/shops/{id:[0-9]+}/accessories", h.Accessories.List).Methods(http.MethodGet).Name("shops.accessories.list")
	api.HandleFunc("/shops/{id:[0-9]+}/accessories", h.Accessories.Create).Methods(http.MethodPost).Name("shops.accessories.create")
	api.HandleFunc("/accessories/{id:[0-9]+}", h.Accessories.Update).Methods(http.MethodPut).Name("accessories.update")
	api.HandleFunc("/accessories/{id:[0-9]+}", h.Accessories.Delete).Methods(http.MethodDelete).Name("accessories.delete")

	return r
}
