package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dogwalk/marketplace/internal/api/middleware"
	"github.com/dogwalk/marketplace/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	IsOwner  bool   `json:"isOwner"`
	IsWalker bool   `json:"isWalker"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Register creates an account, logs it in, and sets the session cookie.
// An account must start with at least one of the owner/walker capabilities.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tkn, _, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.IsOwner, req.IsWalker)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, tkn)
	return c.JSON(http.StatusOK, authResponse{Token: tkn})
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tkn, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, tkn)
	return c.JSON(http.StatusOK, authResponse{Token: tkn})
}

// Logout revokes the current session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.Token(c)); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, tkn string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    tkn,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(h.tokenTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
