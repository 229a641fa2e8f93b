package services

import (
	"context"

	"marginalia/internal/domain/models"
)

// CreateArticleRequest carries a direct text submission.
type CreateArticleRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsPrivate bool   `json:"is_private"`
}

// UploadArticleRequest carries the decoded content of an uploaded file.
// Title is optional; when empty it is derived from Filename with the
// extension stripped.
type UploadArticleRequest struct {
	Filename  string
	Content   string
	Title     string
	IsPrivate bool
}

// ArticleService owns article CRUD, the visibility filter and the
// one-directional publish transition.
type ArticleService interface {
	// List returns the articles the viewer may see, newest first:
	// public ones, plus the viewer's own private ones, plus everything
	// for admins.
	List(ctx context.Context, viewer models.Identity) ([]*models.Article, error)

	// Create validates and stores a direct text submission. Non-admin
	// authors always get a private article regardless of the request.
	Create(ctx context.Context, author models.Identity, req *CreateArticleRequest) (*models.Article, error)

	// CreateFromUpload stores an uploaded file's content under the same
	// rules as Create.
	CreateFromUpload(ctx context.Context, author models.Identity, req *UploadArticleRequest) (*models.Article, error)

	// Get returns the article if the viewer may read it.
	Get(ctx context.Context, id models.ArticleID, viewer models.Identity) (*models.Article, error)

	// Delete removes the article (author only) and best-effort cascades
	// to its annotations. Returns the deleted article.
	Delete(ctx context.Context, id models.ArticleID, requester models.Identity) (*models.Article, error)

	// Publish flips a private article public (author only). Publishing
	// an already-public article is a validation error; there is no way
	// back.
	Publish(ctx context.Context, id models.ArticleID, requester models.Identity) (*models.Article, error)
}
