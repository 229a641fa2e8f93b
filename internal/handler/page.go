package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"marginalia/internal/domain"
	"marginalia/internal/domain/models"
	"marginalia/internal/domain/services"
	"marginalia/internal/httputil"
	"marginalia/internal/render"
)

// PageHandler serves the server-rendered article detail page.
type PageHandler struct {
	articles services.ArticleService
	logger   *slog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(articles services.ArticleService, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		articles: articles,
		logger:   logger,
	}
}

// ArticleDetail renders an article as sanitized HTML. Unlike the API
// routes this responds with plain-text errors, since the caller is a
// browser following a link.
// GET /article/{id}
func (h *PageHandler) ArticleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseArticleID(r.PathValue("id"))
	if err != nil {
		http.Error(w, "article not found", http.StatusNotFound)
		return
	}

	article, err := h.articles.Get(r.Context(), id, httputil.GetIdentity(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "article not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrForbidden):
			http.Error(w, "this article is private", http.StatusForbidden)
		default:
			h.logger.Error("article page failed", "article_id", id, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.ArticleDetail(w, article); err != nil {
		// Headers are out by now; all we can do is log.
		h.logger.Error("article page render failed", "article_id", id, "error", err)
	}
}
