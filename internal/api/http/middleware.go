package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"wheelhub-backend/internal/config"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/security"
)

type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

// Handler authenticates and authorizes requests by the name of the matched
// route. It must be installed with Router.Use so the route is known.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := ""
		if cur := mux.CurrentRoute(r); cur != nil {
			route = cur.GetName()
		}
		level := config.GetSecurityLevel(route)

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token := extractToken(r)
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}
		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "invalid token: "+err.Error())
			return
		}
		if level == config.SecurityVendor && !claims.IsVendor() {
			writeMessage(w, http.StatusForbidden, "vendor account required")
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func extractToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return strings.TrimSpace(token)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// RecoveryMiddleware turns handler panics into 500s instead of dropping the connection.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Handler panicked", "path", r.URL.Path, "panic", rec)
				writeMessage(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
