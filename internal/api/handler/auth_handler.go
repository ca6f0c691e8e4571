package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-system/internal/api/metrics"
	"github.com/technotes/notes-system/internal/core/domain"
	"github.com/technotes/notes-system/internal/core/ports"
)

// refreshCookieName is the cookie carrying the refresh token. The clear
// operation must use the exact same attributes as the set operation or
// browsers silently keep the cookie.
const refreshCookieName = "jwt"

type AuthHandler struct {
	authService ports.AuthService
	audit       ports.AuditRecorder
	refreshTTL  time.Duration
}

func NewAuthHandler(authService ports.AuthService, audit ports.AuditRecorder, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, audit: audit, refreshTTL: refreshTTL}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Login authenticates a user and returns a short-lived access token; the
// refresh token travels only in the "jwt" cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  accessTokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth [post]
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
		metrics.LoginsTotal.WithLabelValues("denied").Inc()
		h.audit.Record(domain.AuditEvent{
			Username: req.Username,
			Action:   domain.AuditLoginDenied,
			RemoteIP: c.RealIP(),
		})
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    result.RefreshToken,
		Path:     "/",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.audit.Record(domain.AuditEvent{
		Username: req.Username,
		Action:   domain.AuditLoginSuccess,
		RemoteIP: c.RealIP(),
	})

	return c.JSON(http.StatusOK, accessTokenResponse{AccessToken: result.AccessToken})
}

// Refresh mints a new access token from the refresh cookie. Public in
// the sense that no bearer token is required: it exists precisely
// because the access token has expired.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  accessTokenResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/refresh [get]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		metrics.TokenRefreshTotal.WithLabelValues("denied").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	result, err := h.authService.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("denied").Inc()
		return err
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	h.audit.Record(domain.AuditEvent{
		Username: result.Username,
		Action:   domain.AuditRefresh,
		RemoteIP: c.RealIP(),
	})

	return c.JSON(http.StatusOK, accessTokenResponse{AccessToken: result.AccessToken})
}

// Logout clears the refresh cookie. Idempotent: without a cookie it is a
// 204 no-op.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Success      204  "no cookie present"
// @Router       /auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return c.NoContent(http.StatusNoContent)
	}

	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	h.audit.Record(domain.AuditEvent{
		Action:   domain.AuditLogout,
		RemoteIP: c.RealIP(),
	})

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "cookie cleared"})
}
