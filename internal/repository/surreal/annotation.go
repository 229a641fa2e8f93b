package surreal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"

	"marginalia/internal/domain"
	"marginalia/internal/domain/models"
	"marginalia/internal/domain/repositories"
)

// SurrealAnnotationRepository implements the AnnotationRepository
// interface. It only executes the individual steps; the service owns
// the per-article lock that keeps the number sequence gapless under
// concurrent creates and deletes.
type SurrealAnnotationRepository struct {
	db     *surrealdb.DB
	logger *slog.Logger
}

// NewAnnotationRepository creates a new annotation repository.
func NewAnnotationRepository(cfg *RepositoryConfig) repositories.AnnotationRepository {
	return &SurrealAnnotationRepository{
		db:     cfg.DB,
		logger: cfg.Logger,
	}
}

// Create stores a new annotation record.
func (r *SurrealAnnotationRepository) Create(ctx context.Context, annotation *models.Annotation) error {
	if _, err := surrealdb.Create[models.Annotation](ctx, r.db, models.TableAnnotation, annotation); err != nil {
		return fmt.Errorf("create annotation: %w", err)
	}
	return nil
}

// GetByID retrieves an annotation by ID.
func (r *SurrealAnnotationRepository) GetByID(ctx context.Context, id models.AnnotationID) (*models.Annotation, error) {
	annotation, err := surrealdb.Select[models.Annotation](ctx, r.db, id.RecordID())
	if err != nil {
		if isNoRecord(err) {
			return nil, fmt.Errorf("annotation %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get annotation: %w", err)
	}
	if annotation == nil {
		return nil, fmt.Errorf("annotation %s: %w", id, domain.ErrNotFound)
	}
	return annotation, nil
}

// ListByArticle returns the article's annotations ordered by number.
func (r *SurrealAnnotationRepository) ListByArticle(ctx context.Context, articleID models.ArticleID) ([]*models.Annotation, error) {
	result, err := surrealdb.Query[[]*models.Annotation](ctx, r.db,
		"SELECT * FROM type::table($tb) WHERE article_id = $article ORDER BY annotation_number ASC",
		map[string]any{
			"tb":      models.TableAnnotation,
			"article": articleID.RecordID(),
		})
	if err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}

	if result == nil || len(*result) == 0 {
		return nil, nil
	}
	return (*result)[0].Result, nil
}

// MaxNumber returns the highest annotation number on the article, or 0
// when it has none.
func (r *SurrealAnnotationRepository) MaxNumber(ctx context.Context, articleID models.ArticleID) (int, error) {
	result, err := surrealdb.Query[[]int](ctx, r.db,
		"SELECT VALUE annotation_number FROM type::table($tb) WHERE article_id = $article ORDER BY annotation_number DESC LIMIT 1",
		map[string]any{
			"tb":      models.TableAnnotation,
			"article": articleID.RecordID(),
		})
	if err != nil {
		return 0, fmt.Errorf("max annotation number: %w", err)
	}

	if result == nil || len(*result) == 0 || len((*result)[0].Result) == 0 {
		return 0, nil
	}
	return (*result)[0].Result[0], nil
}

// UpdateNotes replaces the notes wholesale and refreshes updatedAt.
func (r *SurrealAnnotationRepository) UpdateNotes(ctx context.Context, id models.AnnotationID, notes []models.Note) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		"UPDATE $annotation SET notes = $notes, updated_at = $now",
		map[string]any{
			"annotation": id.RecordID(),
			"notes":      notes,
			"now":        time.Now(),
		})
	if err != nil {
		return fmt.Errorf("update annotation notes: %w", err)
	}
	return nil
}

// Delete removes an annotation record.
func (r *SurrealAnnotationRepository) Delete(ctx context.Context, id models.AnnotationID) error {
	if _, err := surrealdb.Delete[models.Annotation](ctx, r.db, id.RecordID()); err != nil {
		return fmt.Errorf("delete annotation: %w", err)
	}
	return nil
}

// DecrementAbove shifts every number greater than the given one on the
// article down by exactly 1.
func (r *SurrealAnnotationRepository) DecrementAbove(ctx context.Context, articleID models.ArticleID, number int) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		"UPDATE type::table($tb) SET annotation_number -= 1 WHERE article_id = $article AND annotation_number > $number",
		map[string]any{
			"tb":      models.TableAnnotation,
			"article": articleID.RecordID(),
			"number":  number,
		})
	if err != nil {
		return fmt.Errorf("renumber annotations: %w", err)
	}

	r.logger.Debug("annotations renumbered", "article_id", articleID, "above", number)
	return nil
}

// DeleteByArticle removes all annotations on the article.
func (r *SurrealAnnotationRepository) DeleteByArticle(ctx context.Context, articleID models.ArticleID) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		"DELETE type::table($tb) WHERE article_id = $article",
		map[string]any{
			"tb":      models.TableAnnotation,
			"article": articleID.RecordID(),
		})
	if err != nil {
		return fmt.Errorf("delete article annotations: %w", err)
	}
	return nil
}
