package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dogwalk/marketplace/internal/core/domain"
	"github.com/dogwalk/marketplace/internal/core/ports"
)

// CookieName is the session cookie the API issues and reads.
const CookieName = "token"

const (
	actorKey = "actor"
	tokenKey = "session_token"
)

// Guard authenticates requests and enforces access policy. It validates the
// session token, loads the acting user, and exposes role and identity gates
// used ahead of the handlers.
type Guard struct {
	auth  ports.AuthService
	users ports.UserRepository
}

func NewGuard(auth ports.AuthService, users ports.UserRepository) *Guard {
	return &Guard{auth: auth, users: users}
}

// RequireAuthenticated admits any request with a live session, making the
// acting user available downstream without role narrowing.
func (g *Guard) RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := g.authenticate(c); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireOwner admits only users holding the owner capability.
func (g *Guard) RequireOwner() echo.MiddlewareFunc {
	return g.requireCapability(func(u *domain.User) error {
		if !u.IsOwner {
			return domain.ErrNotOwner
		}
		return nil
	})
}

// RequireWalker admits only users holding the walker capability.
func (g *Guard) RequireWalker() echo.MiddlewareFunc {
	return g.requireCapability(func(u *domain.User) error {
		if !u.IsWalker {
			return domain.ErrNotWalker
		}
		return nil
	})
}

// RequireSelf admits only the user whose id appears in the named path
// parameter. The target user must exist, and identity is compared by value;
// there is no elevated override.
func (g *Guard) RequireSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			targetID := c.Param(param)
			if _, err := g.users.FindByID(c.Request().Context(), targetID); err != nil {
				return err
			}

			if err := g.authenticate(c); err != nil {
				return err
			}
			if Actor(c).ID != targetID {
				return domain.ErrWrongUser
			}
			return next(c)
		}
	}
}

func (g *Guard) requireCapability(check func(*domain.User) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := g.authenticate(c); err != nil {
				return err
			}
			if err := check(Actor(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// Authenticate extracts the token, validates the session, loads the acting
// user, and stashes both in the request context. Exposed for handlers whose
// auth requirement depends on the request shape rather than the route.
func (g *Guard) Authenticate(c echo.Context) error {
	return g.authenticate(c)
}

// authenticate is the shared implementation behind every gate.
func (g *Guard) authenticate(c echo.Context) error {
	tkn, err := extractToken(c)
	if err != nil {
		return err
	}

	userID, err := g.auth.ValidateSession(c.Request().Context(), tkn)
	if err != nil {
		return err
	}

	user, err := g.users.FindByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	c.Set(actorKey, user)
	c.Set(tokenKey, tkn)
	return nil
}

// extractToken reads the session cookie, falling back to a bearer header
// for non-browser clients.
func extractToken(c echo.Context) (string, error) {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1], nil
		}
	}
	return "", domain.ErrNoSession
}

// Actor returns the authenticated user injected by the guard, or nil when
// the route is unauthenticated.
func Actor(c echo.Context) *domain.User {
	u, _ := c.Get(actorKey).(*domain.User)
	return u
}

// Token returns the raw session token for the current request.
func Token(c echo.Context) string {
	t, _ := c.Get(tokenKey).(string)
	return t
}
