package repositories

import (
	"context"

	"marginalia/internal/domain/models"
)

// SessionRepository persists opaque sessions in the document store.
type SessionRepository interface {
	// Create stores a new session.
	Create(ctx context.Context, session *models.Session) error

	// GetByID returns the session or domain.ErrNotFound.
	GetByID(ctx context.Context, id models.SessionID) (*models.Session, error)

	// Delete removes the session. Deleting an absent session is not an
	// error; destroy must be idempotent.
	Delete(ctx context.Context, id models.SessionID) error
}
