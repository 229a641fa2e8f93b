package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"marginalia/internal/domain"
	"marginalia/internal/domain/models"
	"marginalia/internal/domain/repositories"
	"marginalia/internal/domain/services"
)

// articleService implements the ArticleService interface.
type articleService struct {
	articles    repositories.ArticleRepository
	annotations repositories.AnnotationRepository
	logger      *slog.Logger
}

// NewArticleService creates a new article service.
func NewArticleService(
	articles repositories.ArticleRepository,
	annotations repositories.AnnotationRepository,
	logger *slog.Logger,
) services.ArticleService {
	return &articleService{
		articles:    articles,
		annotations: annotations,
		logger:      logger,
	}
}

// List returns the articles the viewer may see, newest first.
func (s *articleService) List(ctx context.Context, viewer models.Identity) ([]*models.Article, error) {
	if viewer.IsAdmin {
		return s.articles.ListAll(ctx)
	}
	return s.articles.ListVisible(ctx, viewer.UserID)
}

// Create validates and stores a direct text submission.
func (s *articleService) Create(ctx context.Context, author models.Identity, req *services.CreateArticleRequest) (*models.Article, error) {
	return s.create(ctx, author, req.Title, req.Content, req.IsPrivate)
}

// CreateFromUpload stores an uploaded file's content. A missing title
// falls back to the filename with its extension stripped.
func (s *articleService) CreateFromUpload(ctx context.Context, author models.Identity, req *services.UploadArticleRequest) (*models.Article, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = strings.TrimSuffix(req.Filename, filepath.Ext(req.Filename))
	}
	return s.create(ctx, author, title, req.Content, req.IsPrivate)
}

func (s *articleService) create(ctx context.Context, author models.Identity, title, content string, requestedPrivate bool) (*models.Article, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" {
		return nil, &domain.ValidationError{Message: "title must not be empty"}
	}
	if content == "" {
		return nil, &domain.ValidationError{Message: "content must not be empty"}
	}

	// Only admins may create public articles; everyone else gets a
	// private one no matter what was requested.
	isPrivate := requestedPrivate
	if !author.IsAdmin {
		isPrivate = true
	}

	article := &models.Article{
		ID:        models.NewArticleID(),
		Title:     title,
		Content:   content,
		WordCount: CountWords(content),
		AuthorID:  author.UserID,
		Author:    author.Username,
		IsPrivate: isPrivate,
		CreatedAt: time.Now(),
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Info("article created",
		"article_id", article.ID,
		"author", article.Author,
		"word_count", article.WordCount,
		"is_private", article.IsPrivate,
	)

	return article, nil
}

// Get returns the article if the viewer may read it.
func (s *articleService) Get(ctx context.Context, id models.ArticleID, viewer models.Identity) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !article.VisibleTo(viewer) {
		return nil, &domain.ForbiddenError{Message: "this article is private"}
	}

	return article, nil
}

// Delete removes the article (author only) and best-effort cascades to
// its annotations. The article deletion is authoritative: a cascade
// failure is logged, not surfaced.
func (s *articleService) Delete(ctx context.Context, id models.ArticleID, requester models.Identity) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if article.AuthorID != requester.UserID {
		return nil, &domain.ForbiddenError{Message: "only the author may delete this article"}
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		return nil, err
	}

	if err := s.annotations.DeleteByArticle(ctx, id); err != nil {
		s.logger.Warn("failed to cascade annotation delete",
			"article_id", id,
			"error", err,
		)
	}

	s.logger.Info("article deleted", "article_id", id, "author", article.Author)
	return article, nil
}

// Publish flips a private article public. Author only, one-directional.
func (s *articleService) Publish(ctx context.Context, id models.ArticleID, requester models.Identity) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if article.AuthorID != requester.UserID {
		return nil, &domain.ForbiddenError{Message: "only the author may publish this article"}
	}
	if !article.IsPrivate {
		return nil, &domain.ValidationError{Message: "article is already public"}
	}

	if err := s.articles.SetPublic(ctx, id); err != nil {
		return nil, err
	}
	article.IsPrivate = false

	s.logger.Info("article published", "article_id", id, "author", article.Author)
	return article, nil
}
