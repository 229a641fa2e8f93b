package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marginalia/internal/domain"
	"marginalia/internal/domain/models"
	"marginalia/internal/domain/services"
	"marginalia/internal/httputil"
	"marginalia/internal/middleware"
)

func TestRegisterHandler(t *testing.T) {
	userID := models.NewUserID()
	accounts := &stubAccountService{
		register: func(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
			if req.Username != "alice" || req.Password != "secret1" {
				t.Errorf("unexpected request: %+v", req)
			}
			return &models.User{ID: userID, Username: "alice"}, nil
		},
	}
	h := NewAuthHandler(accounts, nil, false, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username":"alice","password":"secret1"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Username string `json:"username"`
		UserID   string `json:"user_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Username != "alice" || resp.UserID != userID.String() {
		t.Errorf("response = %+v", resp)
	}
}

func TestRegisterHandlerBadBody(t *testing.T) {
	h := NewAuthHandler(&stubAccountService{}, nil, false, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want problem+json", ct)
	}
}

func TestRegisterHandlerDuplicate(t *testing.T) {
	accounts := &stubAccountService{
		register: func(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
			return nil, &domain.ValidationError{Message: "username already exists"}
		},
	}
	h := NewAuthHandler(accounts, nil, false, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username":"alice","password":"secret1"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "username already exists") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestLoginHandler(t *testing.T) {
	user := &models.User{ID: models.NewUserID(), Username: "alice", IsAdmin: true}
	session := &models.Session{
		ID:        models.NewSessionID(),
		UserID:    user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		ExpiresAt: time.Now().Add(models.SessionTTL),
	}
	accounts := &stubAccountService{
		verify: func(ctx context.Context, username, password string) (*models.User, error) {
			return user, nil
		},
	}
	sessions := &stubSessionService{
		create: func(ctx context.Context, u *models.User) (*models.Session, error) {
			return session, nil
		},
	}
	h := NewAuthHandler(accounts, sessions, false, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"alice","password":"secret1"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, c := range cookies {
		if c.Name == middleware.SessionCookie {
			found = c
		}
	}
	if found == nil {
		t.Fatal("session cookie not set")
	}
	if found.Value != session.ID.String() {
		t.Errorf("cookie value = %q, want session token", found.Value)
	}
	if !found.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if found.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", found.SameSite)
	}

	var resp struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.IsAdmin {
		t.Error("is_admin missing from login response")
	}
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	accounts := &stubAccountService{
		verify: func(ctx context.Context, username, password string) (*models.User, error) {
			return nil, &domain.UnauthorizedError{Message: "invalid username or password"}
		},
	}
	h := NewAuthHandler(accounts, &stubSessionService{}, false, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no cookie should be set on failed login")
	}
}

func TestLogoutHandler(t *testing.T) {
	destroyed := ""
	sessions := &stubSessionService{
		destroy: func(ctx context.Context, token string) error {
			destroyed = token
			return nil
		},
	}
	h := NewAuthHandler(&stubAccountService{}, sessions, false, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "token-value"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if destroyed != "token-value" {
		t.Errorf("destroyed token = %q", destroyed)
	}

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cleared = c
		}
	}
	if cleared == nil || cleared.MaxAge != -1 {
		t.Errorf("cookie not cleared: %+v", cleared)
	}
}

func TestLogoutHandlerWithoutCookie(t *testing.T) {
	h := NewAuthHandler(&stubAccountService{}, &stubSessionService{}, false, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 even without a cookie", rec.Code)
	}
}

func TestCurrentUserHandler(t *testing.T) {
	h := NewAuthHandler(&stubAccountService{}, &stubSessionService{}, false, testLogger())

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/current-user", nil)
		rec := httptest.NewRecorder()
		h.CurrentUser(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		identity := models.Identity{UserID: models.NewUserID(), Username: "alice"}
		req := httputil.WithIdentity(httptest.NewRequest(http.MethodGet, "/api/current-user", nil), identity)
		rec := httptest.NewRecorder()
		h.CurrentUser(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"alice"`) {
			t.Errorf("body = %s", rec.Body)
		}
	})
}
