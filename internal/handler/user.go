package handler

import (
	"log/slog"
	"net/http"

	"marginalia/internal/domain/models"
	"marginalia/internal/domain/services"
	"marginalia/internal/httputil"
)

// UserHandler handles the admin-facing user management endpoints.
type UserHandler struct {
	accounts services.AccountService
	logger   *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(accounts services.AccountService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// List returns every account. Password hashes are excluded by the
// model's json tags; the route is admin-guarded.
// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, users)
}

// setAdminRequest is the body of the admin-flag PATCH.
type setAdminRequest struct {
	IsAdmin bool `json:"is_admin"`
}

// SetAdmin grants or revokes the admin flag. The service enforces that
// only root may call this and that neither root nor the requester
// themselves can be targeted.
// PATCH /api/users/{id}/admin
func (h *UserHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	target, err := models.ParseUserID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var req setAdminRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	requester := httputil.GetIdentity(r)
	user, err := h.accounts.SetAdmin(r.Context(), requester, target, req.IsAdmin)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}
