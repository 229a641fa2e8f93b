package handler

import (
	"log/slog"
	"net/http"

	"marginalia/internal/domain/models"
	"marginalia/internal/domain/services"
	"marginalia/internal/httputil"
	"marginalia/internal/middleware"
)

// AuthHandler handles registration, login, logout and identity lookup.
type AuthHandler struct {
	accounts     services.AccountService
	sessions     services.SessionService
	cookieSecure bool
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler. cookieSecure controls the
// Secure flag on the session cookie; it is off for plain-HTTP dev.
func NewAuthHandler(accounts services.AccountService, sessions services.SessionService, cookieSecure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:     accounts,
		sessions:     sessions,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

// registerResponse is the created-identity shape for POST /api/register.
type registerResponse struct {
	Username string        `json:"username"`
	UserID   models.UserID `json:"user_id"`
}

// loginResponse adds the admin flag, which the client needs to decide
// what UI to show.
type loginResponse struct {
	Username string        `json:"username"`
	UserID   models.UserID `json:"user_id"`
	IsAdmin  bool          `json:"is_admin"`
}

// Register creates a new account.
// POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.accounts.Register(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, registerResponse{
		Username: user.Username,
		UserID:   user.ID,
	})
}

// Login verifies credentials and issues a session cookie.
// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.accounts.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	session, err := h.sessions.Create(r.Context(), user)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(session.ID.String(), session))

	httputil.RespondJSON(w, http.StatusOK, loginResponse{
		Username: user.Username,
		UserID:   user.ID,
		IsAdmin:  user.IsAdmin,
	})
}

// Logout destroys the session and clears the cookie. Destroying an
// already-invalid session still succeeds.
// POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			handleError(w, h.logger, err)
			return
		}
	}

	expired := h.sessionCookie("", nil)
	expired.MaxAge = -1
	http.SetCookie(w, expired)

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// CurrentUser returns the resolved identity, or 401 when anonymous.
// GET /api/current-user
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)
	if identity.Anonymous() {
		httputil.RespondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, loginResponse{
		Username: identity.Username,
		UserID:   identity.UserID,
		IsAdmin:  identity.IsAdmin,
	})
}

// sessionCookie builds the session cookie: HttpOnly so page scripts
// never see the token, SameSite=Lax, expiry matching the session's
// fixed 24h lifetime.
func (h *AuthHandler) sessionCookie(value string, session *models.Session) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if session != nil {
		cookie.Expires = session.ExpiresAt
	}
	return cookie
}
