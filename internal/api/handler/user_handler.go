package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dogwalk/marketplace/internal/api/middleware"
	"github.com/dogwalk/marketplace/internal/core/ports"
)

// UserHandler handles HTTP requests for user accounts. It carries the guard
// because GET /users is public with a username filter but requires a session
// without one, which a route-level gate cannot express.
type UserHandler struct {
	service   ports.UserService
	guard     *middleware.Guard
	assembler *Assembler
}

func NewUserHandler(service ports.UserService, guard *middleware.Guard, assembler *Assembler) *UserHandler {
	return &UserHandler{service: service, guard: guard, assembler: assembler}
}

type patchUserRequest struct {
	IsOwner  *bool `json:"isOwner"`
	IsWalker *bool `json:"isWalker"`
}

// Lookup handles GET /users. With a username query it is a public lookup;
// without one it returns the authenticated caller's own account.
func (h *UserHandler) Lookup(c echo.Context) error {
	if username := c.QueryParam("username"); username != "" {
		user, err := h.service.GetByUsername(c.Request().Context(), username)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, h.assembler.User(user))
	}

	if err := h.guard.Authenticate(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.assembler.User(middleware.Actor(c)))
}

// Get handles GET /users/:user_id.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.assembler.User(user))
}

// Patch handles PATCH /users/:user_id, updating the capability flags.
func (h *UserHandler) Patch(c echo.Context) error {
	var req patchUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.UpdateCapabilities(c.Request().Context(), c.Param("user_id"), ports.UserPatch{
		IsOwner:  req.IsOwner,
		IsWalker: req.IsWalker,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /users/:user_id. Deleting an account revokes every
// live session it holds.
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("user_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
