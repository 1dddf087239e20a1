package http

import (
	"context"

	"wheelhub-backend/internal/security"
)

type claimsKey struct{}

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the caller authenticated by AuthMiddleware, or nil
// on public routes.
func ClaimsFromContext(ctx context.Context) *security.UserClaims {
	claims, _ := ctx.Value(claimsKey{}).(*security.UserClaims)
	return claims
}

// GetUserIDFromContext returns 0 when the request is unauthenticated.
func GetUserIDFromContext(ctx context.Context) int32 {
	if c := ClaimsFromContext(ctx); c != nil {
		return c.UserID
	}
	return 0
}
