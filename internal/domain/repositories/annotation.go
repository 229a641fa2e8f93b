package repositories

import (
	"context"

	"marginalia/internal/domain/models"
)

// AnnotationRepository persists annotations. The numbering invariant is
// owned by the service layer, which serializes MaxNumber/Create and
// Delete/DecrementAbove sequences per article.
type AnnotationRepository interface {
	// Create stores a new annotation with its number already assigned.
	Create(ctx context.Context, annotation *models.Annotation) error

	// GetByID returns the annotation or domain.ErrNotFound.
	GetByID(ctx context.Context, id models.AnnotationID) (*models.Annotation, error)

	// ListByArticle returns the article's annotations ordered by
	// annotation number ascending.
	ListByArticle(ctx context.Context, articleID models.ArticleID) ([]*models.Annotation, error)

	// MaxNumber returns the highest annotation number on the article,
	// or 0 when it has none.
	MaxNumber(ctx context.Context, articleID models.ArticleID) (int, error)

	// UpdateNotes replaces the notes wholesale and refreshes updatedAt.
	UpdateNotes(ctx context.Context, id models.AnnotationID, notes []models.Note) error

	// Delete removes the annotation. Existence and ownership are
	// checked by the service before calling.
	Delete(ctx context.Context, id models.AnnotationID) error

	// DecrementAbove shifts every number greater than the given one on
	// the article down by exactly 1. Used by the renumbering pass.
	DecrementAbove(ctx context.Context, articleID models.ArticleID, number int) error

	// DeleteByArticle removes all annotations on the article. Used by
	// the article-delete cascade.
	DeleteByArticle(ctx context.Context, articleID models.ArticleID) error
}
