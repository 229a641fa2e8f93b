package services

import (
	"context"

	"marginalia/internal/domain/models"
)

// RegisterRequest carries the credentials for a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccountService is the credential store: it registers accounts,
// verifies logins and exposes the admin user management operations.
type AccountService interface {
	// Register creates a new account with a salted one-way password
	// hash. The root username is always created as admin.
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)

	// Verify checks a username/password pair. Unknown usernames and
	// wrong passwords both return the same generic UnauthorizedError so
	// callers cannot distinguish which factor failed.
	Verify(ctx context.Context, username, password string) (*models.User, error)

	// GetUser returns a user by ID.
	GetUser(ctx context.Context, id models.UserID) (*models.User, error)

	// ListUsers returns every account, newest first. Password hashes
	// never serialize (json:"-"); admin-only at the transport layer.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// SetAdmin flips the admin flag on the target user. The requester
	// must be root; targeting root or the requester's own account fails.
	SetAdmin(ctx context.Context, requester models.Identity, target models.UserID, isAdmin bool) (*models.User, error)
}
