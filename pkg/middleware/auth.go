package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/splitbuddy/splitbuddy/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// IdentityKey is the context key for the authenticated caller
	IdentityKey ContextKey = "identity"
)

// Identity is the authenticated caller attached to the request context
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// TokenValidator validates a bearer token and returns the caller's identity
type TokenValidator interface {
	ValidateToken(token string) (*Identity, error)
}

// Auth returns middleware that requires a valid "Bearer <token>" header and
// stores the resulting identity in the request context
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			identity, err := validator.ValidateToken(parts[1])
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the authenticated caller from the request context
func GetIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*Identity)
	return identity, ok
}

// GetUserID extracts the authenticated user's ID from the request context
func GetUserID(ctx context.Context) (string, bool) {
	identity, ok := GetIdentity(ctx)
	if !ok {
		return "", false
	}
	return identity.UserID, true
}
