package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greenstreet/ledger-api/internal/core/domain"
	"github.com/greenstreet/ledger-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password, email string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	refreshFn  func(ctx context.Context, rawSecret string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, rawSecret string) error
	currentFn  func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, email)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, rawSecret string) (*ports.LoginResult, error) {
	return s.refreshFn(ctx, rawSecret)
}

func (s *stubAuthService) Logout(ctx context.Context, rawSecret string) error {
	return s.logoutFn(ctx, rawSecret)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.currentFn(ctx, userID)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func testLoginResult() *ports.LoginResult {
	return &ports.LoginResult{
		User: &domain.User{ID: "user-1", Username: "alice1234"},
		Session: &domain.Session{
			ID:                "sess-1",
			UserID:            "user-1",
			RefreshExpiration: time.Now().UTC().Add(30 * 24 * time.Hour),
		},
		AccessToken:   "access-token",
		RefreshSecret: "raw-refresh-secret",
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			if username != "alice1234" || password != "s3cret" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return testLoginResult(), nil
		},
	}
	handler := NewAuthHandler(stub, CookieConfig{Enabled: true, Secure: true})

	body := strings.NewReader(`{"username":"alice1234","password":"s3cret"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access-token" {
		t.Fatalf("missing access token: %+v", resp)
	}
	if _, ok := resp["refresh_token"]; ok {
		t.Fatalf("refresh secret must not be in the body when the cookie channel is on")
	}

	cookies := rec.Result().Cookies()
	var refresh *http.Cookie
	for _, ck := range cookies {
		if ck.Name == "refresh_token" {
			refresh = ck
		}
	}
	if refresh == nil {
		t.Fatalf("refresh cookie not set")
	}
	if refresh.Value != "raw-refresh-secret" {
		t.Fatalf("unexpected cookie value")
	}
	if !refresh.HttpOnly || !refresh.Secure || refresh.SameSite != http.SameSiteStrictMode {
		t.Fatalf("refresh cookie is not protected: %+v", refresh)
	}
}

func TestAuthHandler_Login_BodyChannel(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			return testLoginResult(), nil
		},
	}
	handler := NewAuthHandler(stub, CookieConfig{Enabled: false})

	body := strings.NewReader(`{"username":"alice1234","password":"s3cret"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["refresh_token"] != "raw-refresh-secret" {
		t.Fatalf("expected refresh secret in body, got %+v", resp)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie expected when the cookie channel is off")
	}
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"unknown user", domain.ErrUserNotFound},
		{"wrong password", domain.ErrInvalidCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			stub := &stubAuthService{
				loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
					return nil, tc.err
				},
			}
			handler := NewAuthHandler(stub, CookieConfig{Enabled: true})

			body := strings.NewReader(`{"username":"alice1234","password":"badpass"}`)
			req := httptest.NewRequest(http.MethodPost, "/login", body)
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler.Login(c); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v to propagate, got %v", tc.err, err)
			}
		})
	}
}

func TestAuthHandler_Refresh_WithCookie(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, rawSecret string) (*ports.LoginResult, error) {
			if rawSecret != "raw-refresh-secret" {
				t.Fatalf("unexpected secret: %s", rawSecret)
			}
			return testLoginResult(), nil
		},
	}
	handler := NewAuthHandler(stub, CookieConfig{Enabled: true})

	req := httptest.NewRequest(http.MethodPut, "/sessions/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "raw-refresh-secret"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access-token" {
		t.Fatalf("missing access token: %+v", resp)
	}

	// Rotation re-issues the cookie with the extended expiration.
	var found bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "refresh_token" && ck.Value == "raw-refresh-secret" {
			found = true
		}
	}
	if !found {
		t.Fatalf("refresh cookie not re-issued")
	}
}

func TestAuthHandler_Refresh_MissingCookie(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{}, CookieConfig{Enabled: true})

	req := httptest.NewRequest(http.MethodPut, "/sessions/refresh", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Refresh(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestAuthHandler_Refresh_DeadSession(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, rawSecret string) (*ports.LoginResult, error) {
			return nil, domain.ErrSessionNotFound
		},
	}
	handler := NewAuthHandler(stub, CookieConfig{Enabled: true})

	req := httptest.NewRequest(http.MethodPut, "/sessions/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "stale-secret"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Refresh(c); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	var revoked string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, rawSecret string) error {
			revoked = rawSecret
			return nil
		},
	}
	handler := NewAuthHandler(stub, CookieConfig{Enabled: true})

	req := httptest.NewRequest(http.MethodDelete, "/sessions", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "raw-refresh-secret"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if revoked != "raw-refresh-secret" {
		t.Fatalf("session not revoked")
	}

	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "refresh_token" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("refresh cookie not cleared")
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		currentFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "user-1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.User{ID: userID, Username: "alice1234"}, nil
		},
	}
	handler := NewAuthHandler(stub, CookieConfig{})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-1")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var user map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user["username"] != "alice1234" {
		t.Fatalf("unexpected payload: %+v", user)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{}, CookieConfig{})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
