package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"marginalia/internal/domain"
	"marginalia/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// In-memory repository implementations for service tests. They mirror
// the storage contract exactly: no locking beyond their own map safety,
// so the services' per-article lock is what keeps sequences correct in
// the concurrency tests.

type memUserRepo struct {
	mu    sync.Mutex
	users map[models.UserID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[models.UserID]*models.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id models.UserID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
}

func (r *memUserRepo) List(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *memUserRepo) SetAdmin(ctx context.Context, id models.UserID, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	user.IsAdmin = isAdmin
	return nil
}

type memArticleRepo struct {
	mu       sync.Mutex
	articles map[models.ArticleID]*models.Article
}

func newMemArticleRepo() *memArticleRepo {
	return &memArticleRepo{articles: make(map[models.ArticleID]*models.Article)}
}

func (r *memArticleRepo) Create(ctx context.Context, article *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *article
	r.articles[article.ID] = &copied
	return nil
}

func (r *memArticleRepo) GetByID(ctx context.Context, id models.ArticleID) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	article, ok := r.articles[id]
	if !ok {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	copied := *article
	return &copied, nil
}

func (r *memArticleRepo) ListAll(ctx context.Context) ([]*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(func(*models.Article) bool { return true }), nil
}

func (r *memArticleRepo) ListVisible(ctx context.Context, authorID models.UserID) ([]*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(func(a *models.Article) bool {
		return !a.IsPrivate || a.AuthorID == authorID
	}), nil
}

func (r *memArticleRepo) listLocked(keep func(*models.Article) bool) []*models.Article {
	articles := make([]*models.Article, 0, len(r.articles))
	for _, article := range r.articles {
		if keep(article) {
			copied := *article
			articles = append(articles, &copied)
		}
	}
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles
}

func (r *memArticleRepo) SetPublic(ctx context.Context, id models.ArticleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	article, ok := r.articles[id]
	if !ok {
		return fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	article.IsPrivate = false
	return nil
}

func (r *memArticleRepo) Delete(ctx context.Context, id models.ArticleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.articles, id)
	return nil
}

type memAnnotationRepo struct {
	mu          sync.Mutex
	annotations map[models.AnnotationID]*models.Annotation

	// cascadeErr, when set, makes DeleteByArticle fail so tests can
	// exercise the best-effort cascade.
	cascadeErr error
}

func newMemAnnotationRepo() *memAnnotationRepo {
	return &memAnnotationRepo{annotations: make(map[models.AnnotationID]*models.Annotation)}
}

func (r *memAnnotationRepo) Create(ctx context.Context, annotation *models.Annotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *annotation
	r.annotations[annotation.ID] = &copied
	return nil
}

func (r *memAnnotationRepo) GetByID(ctx context.Context, id models.AnnotationID) (*models.Annotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	annotation, ok := r.annotations[id]
	if !ok {
		return nil, fmt.Errorf("annotation %s: %w", id, domain.ErrNotFound)
	}
	copied := *annotation
	return &copied, nil
}

func (r *memAnnotationRepo) ListByArticle(ctx context.Context, articleID models.ArticleID) ([]*models.Annotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	annotations := make([]*models.Annotation, 0)
	for _, annotation := range r.annotations {
		if annotation.ArticleID == articleID {
			copied := *annotation
			annotations = append(annotations, &copied)
		}
	}
	sort.Slice(annotations, func(i, j int) bool {
		return annotations[i].Number < annotations[j].Number
	})
	return annotations, nil
}

func (r *memAnnotationRepo) MaxNumber(ctx context.Context, articleID models.ArticleID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, annotation := range r.annotations {
		if annotation.ArticleID == articleID && annotation.Number > max {
			max = annotation.Number
		}
	}
	return max, nil
}

func (r *memAnnotationRepo) UpdateNotes(ctx context.Context, id models.AnnotationID, notes []models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	annotation, ok := r.annotations[id]
	if !ok {
		return fmt.Errorf("annotation %s: %w", id, domain.ErrNotFound)
	}
	annotation.Notes = notes
	annotation.UpdatedAt = time.Now()
	return nil
}

func (r *memAnnotationRepo) Delete(ctx context.Context, id models.AnnotationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.annotations, id)
	return nil
}

func (r *memAnnotationRepo) DecrementAbove(ctx context.Context, articleID models.ArticleID, number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, annotation := range r.annotations {
		if annotation.ArticleID == articleID && annotation.Number > number {
			annotation.Number--
		}
	}
	return nil
}

func (r *memAnnotationRepo) DeleteByArticle(ctx context.Context, articleID models.ArticleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cascadeErr != nil {
		return r.cascadeErr
	}
	for id, annotation := range r.annotations {
		if annotation.ArticleID == articleID {
			delete(r.annotations, id)
		}
	}
	return nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[models.SessionID]*models.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[models.SessionID]*models.Session)}
}

func (r *memSessionRepo) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *memSessionRepo) GetByID(ctx context.Context, id models.SessionID) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session: %w", domain.ErrNotFound)
	}
	copied := *session
	return &copied, nil
}

func (r *memSessionRepo) Delete(ctx context.Context, id models.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
