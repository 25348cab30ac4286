package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greenstreet/ledger-api/internal/api/metrics"
	"github.com/greenstreet/ledger-api/internal/core/domain"
	"github.com/greenstreet/ledger-api/internal/core/ports"
)

const refreshCookieName = "refresh_token"

// CookieConfig controls how the refresh secret travels to the client.
type CookieConfig struct {
	// Enabled selects the cookie channel; when false the secret is returned
	// in the response body instead.
	Enabled bool
	Domain  string
	Secure  bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookies     CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login authenticates a username/password pair and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginFailureLabel(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.Inc()

	resp := tokenResponse{AccessToken: result.AccessToken}
	if h.cookies.Enabled {
		c.SetCookie(h.refreshCookie(result.RefreshSecret, result.Session.RefreshExpiration))
	} else {
		resp.RefreshToken = result.RefreshSecret
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh rotates the presented session and mints a fresh access token.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  tokenResponse
// @Failure      403  {object}  map[string]string
// @Router       /sessions/refresh [put]
func (h *AuthHandler) Refresh(c echo.Context) error {
	secret := h.refreshSecretFromRequest(c)
	if secret == "" {
		return echo.NewHTTPError(http.StatusForbidden, "authentication required")
	}

	result, err := h.authService.Refresh(c.Request().Context(), secret)
	if err != nil {
		if errors.Is(err, domain.ErrRotationConflict) {
			metrics.RotationConflictsTotal.Inc()
		}
		return err
	}

	metrics.SessionsRotatedTotal.Inc()

	resp := tokenResponse{AccessToken: result.AccessToken}
	if h.cookies.Enabled {
		// Rotation extended the session; re-issue the cookie so its
		// lifetime tracks the new expiration.
		c.SetCookie(h.refreshCookie(result.RefreshSecret, result.Session.RefreshExpiration))
	} else {
		resp.RefreshToken = result.RefreshSecret
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /sessions [delete]
func (h *AuthHandler) Logout(c echo.Context) error {
	secret := h.refreshSecretFromRequest(c)
	if secret != "" {
		if err := h.authService.Logout(c.Request().Context(), secret); err != nil {
			return err
		}
		metrics.SessionsRevokedTotal.Inc()
	}

	if h.cookies.Enabled {
		expired := h.refreshCookie("", time.Now().UTC())
		expired.MaxAge = -1
		c.SetCookie(expired)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the identity behind the verified access token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// refreshSecretFromRequest reads the refresh secret from the cookie, falling
// back to the body when the cookie channel is disabled.
func (h *AuthHandler) refreshSecretFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if !h.cookies.Enabled {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			return req.RefreshToken
		}
	}
	return ""
}

func (h *AuthHandler) refreshCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.cookies.Domain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// loginFailureLabel is for metrics only; it never reaches the client.
func loginFailureLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_password"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	default:
		return "error"
	}
}
