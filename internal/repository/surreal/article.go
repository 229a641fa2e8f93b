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

// SurrealArticleRepository implements the ArticleRepository interface.
type SurrealArticleRepository struct {
	db     *surrealdb.DB
	logger *slog.Logger
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(cfg *RepositoryConfig) repositories.ArticleRepository {
	return &SurrealArticleRepository{
		db:     cfg.DB,
		logger: cfg.Logger,
	}
}

// Create stores a new article record.
func (r *SurrealArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if _, err := surrealdb.Create[models.Article](ctx, r.db, models.TableArticle, article); err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

// GetByID retrieves an article by ID.
func (r *SurrealArticleRepository) GetByID(ctx context.Context, id models.ArticleID) (*models.Article, error) {
	article, err := surrealdb.Select[models.Article](ctx, r.db, id.RecordID())
	if err != nil {
		if isNoRecord(err) {
			return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	return article, nil
}

// ListAll returns every article, newest first.
func (r *SurrealArticleRepository) ListAll(ctx context.Context) ([]*models.Article, error) {
	result, err := surrealdb.Query[[]*models.Article](ctx, r.db,
		"SELECT * FROM type::table($tb) ORDER BY created_at DESC",
		map[string]any{"tb": models.TableArticle})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	if result == nil || len(*result) == 0 {
		return nil, nil
	}
	return (*result)[0].Result, nil
}

// ListVisible returns public articles plus the author's private ones,
// newest first. A zero authorID matches nothing private, so anonymous
// viewers get public articles only.
func (r *SurrealArticleRepository) ListVisible(ctx context.Context, authorID models.UserID) ([]*models.Article, error) {
	result, err := surrealdb.Query[[]*models.Article](ctx, r.db,
		"SELECT * FROM type::table($tb) WHERE is_private = false OR author_id = $author ORDER BY created_at DESC",
		map[string]any{
			"tb":     models.TableArticle,
			"author": authorID.RecordID(),
		})
	if err != nil {
		return nil, fmt.Errorf("list visible articles: %w", err)
	}

	if result == nil || len(*result) == 0 {
		return nil, nil
	}
	return (*result)[0].Result, nil
}

// SetPublic clears the private flag on an existing article.
func (r *SurrealArticleRepository) SetPublic(ctx context.Context, id models.ArticleID) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		"UPDATE $article SET is_private = false",
		map[string]any{"article": id.RecordID()})
	if err != nil {
		return fmt.Errorf("publish article: %w", err)
	}

	r.logger.Info("article published", "article_id", id)
	return nil
}

// Delete removes an article record.
func (r *SurrealArticleRepository) Delete(ctx context.Context, id models.ArticleID) error {
	if _, err := surrealdb.Delete[models.Article](ctx, r.db, id.RecordID()); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}
