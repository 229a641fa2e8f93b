package handler

import (
	"log/slog"
	"net/http"

	"marginalia/internal/domain/models"
	"marginalia/internal/domain/services"
	"marginalia/internal/httputil"
)

// AnnotationHandler handles annotation HTTP requests.
type AnnotationHandler struct {
	annotations services.AnnotationService
	logger      *slog.Logger
}

// NewAnnotationHandler creates a new annotation handler.
func NewAnnotationHandler(annotations services.AnnotationService, logger *slog.Logger) *AnnotationHandler {
	return &AnnotationHandler{
		annotations: annotations,
		logger:      logger,
	}
}

// ListForArticle returns the article's annotations ordered by number,
// each tagged with whether the caller owns it.
// GET /api/articles/{articleId}/annotations
func (h *AnnotationHandler) ListForArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := models.ParseArticleID(r.PathValue("articleId"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	views, err := h.annotations.ListForArticle(r.Context(), articleID, httputil.GetIdentity(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if views == nil {
		views = []*models.AnnotationView{}
	}
	httputil.RespondJSON(w, http.StatusOK, views)
}

// Create attaches a new annotation to a span of the article's text.
// POST /api/articles/{articleId}/annotations
func (h *AnnotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	articleID, err := models.ParseArticleID(r.PathValue("articleId"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	var req services.CreateAnnotationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	annotation, err := h.annotations.Create(r.Context(), articleID, httputil.GetIdentity(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, annotation)
}

// Update replaces an annotation's notes (owner only).
// PUT /api/annotations/{id}
func (h *AnnotationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseAnnotationID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid annotation ID")
		return
	}

	var req services.UpdateAnnotationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	annotation, err := h.annotations.Update(r.Context(), id, httputil.GetIdentity(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, annotation)
}

// Delete removes an annotation (owner only) and renumbers the rest of
// the article's sequence.
// DELETE /api/annotations/{id}
func (h *AnnotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseAnnotationID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid annotation ID")
		return
	}

	if err := h.annotations.Delete(r.Context(), id, httputil.GetIdentity(r)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
