package httputil

import (
	"context"
	"net/http"

	"marginalia/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a request whose context carries the resolved
// caller identity. Set once by the session middleware.
func WithIdentity(r *http.Request, identity models.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, identity)
	return r.WithContext(ctx)
}

// GetIdentity retrieves the caller identity from the request context.
// Requests that never passed the session middleware resolve as
// anonymous.
func GetIdentity(r *http.Request) models.Identity {
	identity, _ := r.Context().Value(identityKey).(models.Identity)
	return identity
}
