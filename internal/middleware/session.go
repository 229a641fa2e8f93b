package middleware

import (
	"net/http"

	"marginalia/internal/domain/services"
	"marginalia/internal/httputil"
)

// SessionCookie is the name of the cookie carrying the opaque session
// token.
const SessionCookie = "marginalia_session"

// Session resolves the session cookie into an identity exactly once per
// request and stores it in the request context. Resolution never fails:
// requests without a valid session proceed as anonymous, and each
// handler decides what anonymous callers may do.
func Session(sessions services.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				token = cookie.Value
			}

			identity := sessions.Resolve(r.Context(), token)
			next.ServeHTTP(w, httputil.WithIdentity(r, identity))
		})
	}
}

// RequireAuth rejects anonymous callers with 401 before the wrapped
// handler runs.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if httputil.GetIdentity(r).Anonymous() {
			httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}

// RequireAdmin rejects anonymous callers with 401 and authenticated
// non-admins with 403.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if !httputil.GetIdentity(r).IsAdmin {
			httputil.RespondError(w, http.StatusForbidden, "admin privileges required")
			return
		}
		next(w, r)
	})
}
