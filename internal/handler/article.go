package handler

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"marginalia/internal/domain/models"
	"marginalia/internal/domain/services"
	"marginalia/internal/httputil"
)

// maxUploadSize caps uploaded article files.
const maxUploadSize = 10 << 20

// ArticleHandler handles article HTTP requests.
type ArticleHandler struct {
	articles services.ArticleService
	logger   *slog.Logger
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(articles services.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles: articles,
		logger:   logger,
	}
}

// List returns the articles visible to the caller, newest first.
// GET /api/articles
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.List(r.Context(), httputil.GetIdentity(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	// Empty list, not null, when nothing is visible.
	if articles == nil {
		articles = []*models.Article{}
	}
	httputil.RespondJSON(w, http.StatusOK, articles)
}

// Create stores a direct text submission.
// POST /api/articles
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateArticleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.articles.Create(r.Context(), httputil.GetIdentity(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, article)
}

// Upload stores an article from a multipart file. Only .txt and .md
// files are accepted; an optional title form field overrides the
// filename-derived default.
// POST /api/articles/upload
func (h *ArticleHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "a file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".txt" && ext != ".md" {
		httputil.RespondError(w, http.StatusBadRequest, "only .txt and .md files are supported")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	req := services.UploadArticleRequest{
		Filename:  header.Filename,
		Content:   string(content),
		Title:     r.FormValue("title"),
		IsPrivate: r.FormValue("is_private") == "true",
	}

	article, err := h.articles.CreateFromUpload(r.Context(), httputil.GetIdentity(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, article)
}

// Delete removes an article (author only) and responds with the deleted
// record.
// DELETE /api/articles/{id}
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseArticleID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	article, err := h.articles.Delete(r.Context(), id, httputil.GetIdentity(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, article)
}

// Publish flips a private article public (author only).
// PATCH /api/articles/{id}/publish
func (h *ArticleHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseArticleID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	article, err := h.articles.Publish(r.Context(), id, httputil.GetIdentity(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, article)
}
