package surreal

import (
	"context"
	"fmt"
	"log/slog"

	surrealdb "github.com/surrealdb/surrealdb.go"

	"marginalia/internal/domain"
	"marginalia/internal/domain/models"
	"marginalia/internal/domain/repositories"
)

// SurrealUserRepository implements the UserRepository interface.
type SurrealUserRepository struct {
	db     *surrealdb.DB
	logger *slog.Logger
}

// NewUserRepository creates a new user repository.
func NewUserRepository(cfg *RepositoryConfig) repositories.UserRepository {
	return &SurrealUserRepository{
		db:     cfg.DB,
		logger: cfg.Logger,
	}
}

// Create stores a new user record.
func (r *SurrealUserRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := surrealdb.Create[models.User](ctx, r.db, models.TableUser, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *SurrealUserRepository) GetByID(ctx context.Context, id models.UserID) (*models.User, error) {
	user, err := surrealdb.Select[models.User](ctx, r.db, id.RecordID())
	if err != nil {
		if isNoRecord(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return user, nil
}

// GetByUsername retrieves a user by exact, case-sensitive username.
func (r *SurrealUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	result, err := surrealdb.Query[[]*models.User](ctx, r.db,
		"SELECT * FROM type::table($tb) WHERE username = $username",
		map[string]any{
			"tb":       models.TableUser,
			"username": username,
		})
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	if result == nil || len(*result) == 0 || len((*result)[0].Result) == 0 {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}
	return (*result)[0].Result[0], nil
}

// List returns every user, newest first.
func (r *SurrealUserRepository) List(ctx context.Context) ([]*models.User, error) {
	result, err := surrealdb.Query[[]*models.User](ctx, r.db,
		"SELECT * FROM type::table($tb) ORDER BY created_at DESC",
		map[string]any{"tb": models.TableUser})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	if result == nil || len(*result) == 0 {
		return nil, nil
	}
	return (*result)[0].Result, nil
}

// SetAdmin updates the admin flag on an existing user.
func (r *SurrealUserRepository) SetAdmin(ctx context.Context, id models.UserID, isAdmin bool) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		"UPDATE $user SET is_admin = $is_admin",
		map[string]any{
			"user":     id.RecordID(),
			"is_admin": isAdmin,
		})
	if err != nil {
		return fmt.Errorf("set admin flag: %w", err)
	}

	r.logger.Info("admin flag updated", "user_id", id, "is_admin", isAdmin)
	return nil
}
