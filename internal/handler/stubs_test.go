package handler

import (
	"context"
	"io"
	"log/slog"

	"marginalia/internal/domain/models"
	"marginalia/internal/domain/services"
)

// Function-field stubs for the service interfaces. Each test wires only
// the methods its handler path touches; an unwired method panics, which
// catches handlers calling something they should not.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubAccountService struct {
	register  func(ctx context.Context, req *services.RegisterRequest) (*models.User, error)
	verify    func(ctx context.Context, username, password string) (*models.User, error)
	getUser   func(ctx context.Context, id models.UserID) (*models.User, error)
	listUsers func(ctx context.Context) ([]*models.User, error)
	setAdmin  func(ctx context.Context, requester models.Identity, target models.UserID, isAdmin bool) (*models.User, error)
}

func (s *stubAccountService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	return s.register(ctx, req)
}

func (s *stubAccountService) Verify(ctx context.Context, username, password string) (*models.User, error) {
	return s.verify(ctx, username, password)
}

func (s *stubAccountService) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	return s.getUser(ctx, id)
}

func (s *stubAccountService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.listUsers(ctx)
}

func (s *stubAccountService) SetAdmin(ctx context.Context, requester models.Identity, target models.UserID, isAdmin bool) (*models.User, error) {
	return s.setAdmin(ctx, requester, target, isAdmin)
}

type stubSessionService struct {
	create  func(ctx context.Context, user *models.User) (*models.Session, error)
	resolve func(ctx context.Context, token string) models.Identity
	destroy func(ctx context.Context, token string) error
}

func (s *stubSessionService) Create(ctx context.Context, user *models.User) (*models.Session, error) {
	return s.create(ctx, user)
}

func (s *stubSessionService) Resolve(ctx context.Context, token string) models.Identity {
	return s.resolve(ctx, token)
}

func (s *stubSessionService) Destroy(ctx context.Context, token string) error {
	return s.destroy(ctx, token)
}

type stubArticleService struct {
	list             func(ctx context.Context, viewer models.Identity) ([]*models.Article, error)
	create           func(ctx context.Context, author models.Identity, req *services.CreateArticleRequest) (*models.Article, error)
	createFromUpload func(ctx context.Context, author models.Identity, req *services.UploadArticleRequest) (*models.Article, error)
	get              func(ctx context.Context, id models.ArticleID, viewer models.Identity) (*models.Article, error)
	deleteFn         func(ctx context.Context, id models.ArticleID, requester models.Identity) (*models.Article, error)
	publish          func(ctx context.Context, id models.ArticleID, requester models.Identity) (*models.Article, error)
}

func (s *stubArticleService) List(ctx context.Context, viewer models.Identity) ([]*models.Article, error) {
	return s.list(ctx, viewer)
}

func (s *stubArticleService) Create(ctx context.Context, author models.Identity, req *services.CreateArticleRequest) (*models.Article, error) {
	return s.create(ctx, author, req)
}

func (s *stubArticleService) CreateFromUpload(ctx context.Context, author models.Identity, req *services.UploadArticleRequest) (*models.Article, error) {
	return s.createFromUpload(ctx, author, req)
}

func (s *stubArticleService) Get(ctx context.Context, id models.ArticleID, viewer models.Identity) (*models.Article, error) {
	return s.get(ctx, id, viewer)
}

func (s *stubArticleService) Delete(ctx context.Context, id models.ArticleID, requester models.Identity) (*models.Article, error) {
	return s.deleteFn(ctx, id, requester)
}

func (s *stubArticleService) Publish(ctx context.Context, id models.ArticleID, requester models.Identity) (*models.Article, error) {
	return s.publish(ctx, id, requester)
}

type stubAnnotationService struct {
	listForArticle func(ctx context.Context, articleID models.ArticleID, viewer models.Identity) ([]*models.AnnotationView, error)
	create         func(ctx context.Context, articleID models.ArticleID, author models.Identity, req *services.CreateAnnotationRequest) (*models.Annotation, error)
	update         func(ctx context.Context, id models.AnnotationID, requester models.Identity, req *services.UpdateAnnotationRequest) (*models.Annotation, error)
	deleteFn       func(ctx context.Context, id models.AnnotationID, requester models.Identity) error
}

func (s *stubAnnotationService) ListForArticle(ctx context.Context, articleID models.ArticleID, viewer models.Identity) ([]*models.AnnotationView, error) {
	return s.listForArticle(ctx, articleID, viewer)
}

func (s *stubAnnotationService) Create(ctx context.Context, articleID models.ArticleID, author models.Identity, req *services.CreateAnnotationRequest) (*models.Annotation, error) {
	return s.create(ctx, articleID, author, req)
}

func (s *stubAnnotationService) Update(ctx context.Context, id models.AnnotationID, requester models.Identity, req *services.UpdateAnnotationRequest) (*models.Annotation, error) {
	return s.update(ctx, id, requester, req)
}

func (s *stubAnnotationService) Delete(ctx context.Context, id models.AnnotationID, requester models.Identity) error {
	return s.deleteFn(ctx, id, requester)
}
