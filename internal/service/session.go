package service

import (
	"context"
	"log/slog"
	"time"

	"marginalia/internal/domain/models"
	"marginalia/internal/domain/repositories"
	"marginalia/internal/domain/services"
)

// sessionService implements the SessionService interface on top of
// sessions persisted in the document store.
type sessionService struct {
	sessions repositories.SessionRepository
	logger   *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(sessions repositories.SessionRepository, logger *slog.Logger) services.SessionService {
	return &sessionService{
		sessions: sessions,
		logger:   logger,
	}
}

// Create issues a new opaque session with a fixed 24h absolute expiry.
func (s *sessionService) Create(ctx context.Context, user *models.User) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		ID:        models.NewSessionID(),
		UserID:    user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		ExpiresAt: now.Add(models.SessionTTL),
		CreatedAt: now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("session created", "user_id", user.ID, "username", user.Username)
	return session, nil
}

// Resolve maps a raw cookie value to an identity. Missing, malformed,
// unknown and expired tokens all resolve to the anonymous identity;
// callers branch on Identity.Anonymous, never on an error.
func (s *sessionService) Resolve(ctx context.Context, token string) models.Identity {
	if token == "" {
		return models.Identity{}
	}

	id, err := models.ParseSessionID(token)
	if err != nil {
		return models.Identity{}
	}

	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return models.Identity{}
	}

	if session.Expired(time.Now()) {
		// Best-effort cleanup; an expired session resolving as
		// anonymous does not depend on the delete succeeding.
		if err := s.sessions.Delete(ctx, id); err != nil {
			s.logger.Warn("failed to delete expired session", "error", err)
		}
		return models.Identity{}
	}

	return session.Identity()
}

// Destroy invalidates the session. Unknown or malformed tokens are a
// no-op; only a storage fault surfaces as an error.
func (s *sessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	id, err := models.ParseSessionID(token)
	if err != nil {
		return nil
	}

	return s.sessions.Delete(ctx, id)
}
