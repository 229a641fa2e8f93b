package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"marginalia/internal/domain"
	"marginalia/internal/domain/models"
	"marginalia/internal/domain/repositories"
	"marginalia/internal/domain/services"
)

// annotationService implements the AnnotationService interface. The
// keyed lock makes number assignment and the renumbering pass mutually
// exclusive per article, which is what keeps the sequence gapless and
// duplicate-free under concurrent requests.
type annotationService struct {
	annotations repositories.AnnotationRepository
	articles    repositories.ArticleRepository
	locks       *articleLocks
	logger      *slog.Logger
}

// NewAnnotationService creates a new annotation service.
func NewAnnotationService(
	annotations repositories.AnnotationRepository,
	articles repositories.ArticleRepository,
	logger *slog.Logger,
) services.AnnotationService {
	return &annotationService{
		annotations: annotations,
		articles:    articles,
		locks:       newArticleLocks(),
		logger:      logger,
	}
}

// ListForArticle returns the article's annotations in number order,
// tagged with ownership for the viewer. Visibility follows the article:
// a viewer who cannot read a private article cannot list its
// annotations either.
func (s *annotationService) ListForArticle(ctx context.Context, articleID models.ArticleID, viewer models.Identity) ([]*models.AnnotationView, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !article.VisibleTo(viewer) {
		return nil, &domain.ForbiddenError{Message: "this article is private"}
	}

	annotations, err := s.annotations.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	views := make([]*models.AnnotationView, 0, len(annotations))
	for _, a := range annotations {
		views = append(views, &models.AnnotationView{
			Annotation: *a,
			IsOwner:    !viewer.Anonymous() && a.UserID == viewer.UserID,
		})
	}
	return views, nil
}

// Create appends an annotation at the tail of the article's sequence.
func (s *annotationService) Create(ctx context.Context, articleID models.ArticleID, author models.Identity, req *services.CreateAnnotationRequest) (*models.Annotation, error) {
	if strings.TrimSpace(req.SelectedText) == "" {
		return nil, &domain.ValidationError{Message: "selected text must not be empty"}
	}
	if len(req.Notes) == 0 {
		return nil, &domain.ValidationError{Message: "at least one note is required"}
	}

	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !article.VisibleTo(author) {
		return nil, &domain.ForbiddenError{Message: "this article is private"}
	}

	// Number assignment must not race a concurrent create or a
	// delete's renumbering pass on the same article.
	unlock := s.locks.Lock(articleID)
	defer unlock()

	max, err := s.annotations.MaxNumber(ctx, articleID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	annotation := &models.Annotation{
		ID:           models.NewAnnotationID(),
		ArticleID:    articleID,
		UserID:       author.UserID,
		Username:     author.Username,
		Number:       max + 1,
		SelectedText: req.SelectedText,
		StartOffset:  req.StartOffset,
		EndOffset:    req.EndOffset,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.annotations.Create(ctx, annotation); err != nil {
		return nil, err
	}

	s.logger.Info("annotation created",
		"annotation_id", annotation.ID,
		"article_id", articleID,
		"number", annotation.Number,
		"username", author.Username,
	)

	return annotation, nil
}

// Update replaces the annotation's notes wholesale (owner only).
func (s *annotationService) Update(ctx context.Context, id models.AnnotationID, requester models.Identity, req *services.UpdateAnnotationRequest) (*models.Annotation, error) {
	annotation, err := s.annotations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if annotation.UserID != requester.UserID {
		return nil, &domain.ForbiddenError{Message: "only the owner may update this annotation"}
	}
	if len(req.Notes) == 0 {
		return nil, &domain.ValidationError{Message: "at least one note is required"}
	}

	if err := s.annotations.UpdateNotes(ctx, id, req.Notes); err != nil {
		return nil, err
	}

	annotation.Notes = req.Notes
	annotation.UpdatedAt = time.Now()
	return annotation, nil
}

// Delete removes the annotation (owner only), then renumbers: every
// remaining annotation on the article numbered above the deleted one
// shifts down by exactly 1, restoring the 1..N sequence without
// disturbing relative order.
func (s *annotationService) Delete(ctx context.Context, id models.AnnotationID, requester models.Identity) error {
	annotation, err := s.annotations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if annotation.UserID != requester.UserID {
		return &domain.ForbiddenError{Message: "only the owner may delete this annotation"}
	}

	unlock := s.locks.Lock(annotation.ArticleID)
	defer unlock()

	// Re-read under the lock: a concurrent delete on the same article
	// may have renumbered this annotation since the ownership check.
	annotation, err = s.annotations.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.annotations.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.annotations.DecrementAbove(ctx, annotation.ArticleID, annotation.Number); err != nil {
		return err
	}

	s.logger.Info("annotation deleted",
		"annotation_id", id,
		"article_id", annotation.ArticleID,
		"number", annotation.Number,
	)

	return nil
}
