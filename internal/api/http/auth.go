package http

import (
	"net/http"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type registerRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone_number"`
	Password string          `json:"password"`
	Role     domain.UserRole `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

type deviceTokenRequest struct {
	DeviceToken string `json:"device_token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, token, err := h.authSvc.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{User: user, AccessToken: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, token, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: user, AccessToken: token})
}

func (h *AuthHandler) UpdateDeviceToken(w http.ResponseWriter, r *http.Request) {
	var req deviceTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.authSvc.UpdateDeviceToken(r.Context(), GetUserIDFromContext(r.Context()), req.DeviceToken); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
