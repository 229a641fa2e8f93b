package services

import (
	"context"

	"marginalia/internal/domain/models"
)

// CreateAnnotationRequest carries a new annotation on a text span.
type CreateAnnotationRequest struct {
	SelectedText string        `json:"selected_text"`
	StartOffset  int           `json:"start_offset"`
	EndOffset    int           `json:"end_offset"`
	Notes        []models.Note `json:"notes"`
}

// UpdateAnnotationRequest replaces an annotation's notes wholesale.
type UpdateAnnotationRequest struct {
	Notes []models.Note `json:"notes"`
}

// AnnotationService owns annotation CRUD and the per-article gapless
// numbering sequence, including the renumbering pass after deletes.
type AnnotationService interface {
	// ListForArticle returns the article's annotations ordered by
	// number, each tagged with whether the viewer owns it. Annotation
	// visibility follows the article: viewers who cannot read the
	// article cannot list its annotations.
	ListForArticle(ctx context.Context, articleID models.ArticleID, viewer models.Identity) ([]*models.AnnotationView, error)

	// Create appends an annotation at the tail of the article's number
	// sequence.
	Create(ctx context.Context, articleID models.ArticleID, author models.Identity, req *CreateAnnotationRequest) (*models.Annotation, error)

	// Update replaces the notes (owner only).
	Update(ctx context.Context, id models.AnnotationID, requester models.Identity, req *UpdateAnnotationRequest) (*models.Annotation, error)

	// Delete removes the annotation (owner only) and renumbers the
	// remaining ones so the sequence stays 1..N.
	Delete(ctx context.Context, id models.AnnotationID, requester models.Identity) error
}
