package services

import (
	"context"

	"marginalia/internal/domain/models"
)

// SessionService is the session authority: it issues, resolves and
// destroys the opaque tokens carried by the session cookie.
type SessionService interface {
	// Create issues a new session for the user with a fixed absolute
	// expiry of models.SessionTTL from now.
	Create(ctx context.Context, user *models.User) (*models.Session, error)

	// Resolve maps a raw cookie value to an identity. It never fails:
	// missing, malformed, unknown and expired tokens all resolve to the
	// anonymous identity.
	Resolve(ctx context.Context, token string) models.Identity

	// Destroy invalidates the session. Destroying an already-invalid
	// token is a no-op; only a storage fault is an error.
	Destroy(ctx context.Context, token string) error
}
