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

// SurrealSessionRepository implements the SessionRepository interface.
type SurrealSessionRepository struct {
	db     *surrealdb.DB
	logger *slog.Logger
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(cfg *RepositoryConfig) repositories.SessionRepository {
	return &SurrealSessionRepository{
		db:     cfg.DB,
		logger: cfg.Logger,
	}
}

// Create stores a new session record.
func (r *SurrealSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if _, err := surrealdb.Create[models.Session](ctx, r.db, models.TableSession, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its token.
func (r *SurrealSessionRepository) GetByID(ctx context.Context, id models.SessionID) (*models.Session, error) {
	session, err := surrealdb.Select[models.Session](ctx, r.db, id.RecordID())
	if err != nil {
		if isNoRecord(err) {
			return nil, fmt.Errorf("session: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session: %w", domain.ErrNotFound)
	}
	return session, nil
}

// Delete removes a session record. Deleting an absent session is fine.
func (r *SurrealSessionRepository) Delete(ctx context.Context, id models.SessionID) error {
	if _, err := surrealdb.Delete[models.Session](ctx, r.db, id.RecordID()); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
