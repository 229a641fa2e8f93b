package repositories

import (
	"context"

	"marginalia/internal/domain/models"
)

// ArticleRepository persists articles. Visibility rules live in the
// service layer; List variants here are plain storage filters.
type ArticleRepository interface {
	// Create stores a new article.
	Create(ctx context.Context, article *models.Article) error

	// GetByID returns the article or domain.ErrNotFound.
	GetByID(ctx context.Context, id models.ArticleID) (*models.Article, error)

	// ListAll returns every article, newest first.
	ListAll(ctx context.Context) ([]*models.Article, error)

	// ListVisible returns public articles plus the given author's
	// private ones, newest first. A zero authorID lists public only.
	ListVisible(ctx context.Context, authorID models.UserID) ([]*models.Article, error)

	// SetPublic clears the private flag on an existing article.
	SetPublic(ctx context.Context, id models.ArticleID) error

	// Delete removes the article. Existence and ownership are checked
	// by the service before calling.
	Delete(ctx context.Context, id models.ArticleID) error
}
