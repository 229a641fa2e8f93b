package repositories

import (
	"context"

	"marginalia/internal/domain/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Create stores a new user. The caller is responsible for having
	// checked username uniqueness first.
	Create(ctx context.Context, user *models.User) error

	// GetByID returns the user or domain.ErrNotFound.
	GetByID(ctx context.Context, id models.UserID) (*models.User, error)

	// GetByUsername performs a case-sensitive exact lookup and returns
	// the user or domain.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// List returns every user, newest first.
	List(ctx context.Context) ([]*models.User, error)

	// SetAdmin updates the admin flag on an existing user.
	SetAdmin(ctx context.Context, id models.UserID, isAdmin bool) error
}
