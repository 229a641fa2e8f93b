package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"

	"marginalia/internal/domain"
	"marginalia/internal/domain/models"
	"marginalia/internal/domain/repositories"
	"marginalia/internal/domain/services"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 6

// accountService implements the AccountService interface.
type accountService struct {
	users  repositories.UserRepository
	logger *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(users repositories.UserRepository, logger *slog.Logger) services.AccountService {
	return &accountService{
		users:  users,
		logger: logger,
	}
}

// Register creates a new account. The stored credential is a salted
// bcrypt hash; the plaintext is never persisted.
func (s *accountService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Username, validation.Required.Error("username is required")),
		validation.Field(&req.Password,
			validation.Required.Error("password is required"),
			validation.Length(minPasswordLength, 0).Error(
				fmt.Sprintf("password must be at least %d characters", minPasswordLength)),
		),
	); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	// Case-sensitive uniqueness check: "Alice" and "alice" are
	// different accounts.
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, &domain.ValidationError{Message: "username already exists"}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           models.NewUserID(),
		Username:     req.Username,
		PasswordHash: string(hash),
		IsAdmin:      req.Username == models.RootUsername,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"username", user.Username,
		"is_admin", user.IsAdmin,
	)

	return user, nil
}

// Verify checks a username/password pair. Both failure modes return the
// same generic error so the response never reveals whether the username
// exists.
func (s *accountService) Verify(ctx context.Context, username, password string) (*models.User, error) {
	genericErr := &domain.UnauthorizedError{Message: "invalid username or password"}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, genericErr
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, genericErr
	}

	return user, nil
}

// GetUser returns a user by ID.
func (s *accountService) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers returns every account, newest first.
func (s *accountService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// SetAdmin flips the admin flag on the target user. Only root may call
// it, root itself can never be targeted, and neither can the requester.
func (s *accountService) SetAdmin(ctx context.Context, requester models.Identity, target models.UserID, isAdmin bool) (*models.User, error) {
	if requester.Username != models.RootUsername {
		return nil, &domain.ForbiddenError{Message: "only root may change admin status"}
	}
	if target == requester.UserID {
		return nil, &domain.ValidationError{Message: "cannot change your own admin status"}
	}

	user, err := s.users.GetByID(ctx, target)
	if err != nil {
		return nil, err
	}
	if user.IsRoot() {
		return nil, &domain.ForbiddenError{Message: "root admin status cannot be changed"}
	}

	if err := s.users.SetAdmin(ctx, target, isAdmin); err != nil {
		return nil, err
	}
	user.IsAdmin = isAdmin

	s.logger.Info("admin status changed",
		"target_id", target,
		"target_username", user.Username,
		"is_admin", isAdmin,
		"by", requester.Username,
	)

	return user, nil
}
