package ports

import (
	"context"

	"github.com/dogwalk/marketplace/internal/core/domain"
)

// AuthService implements registration, login, and session validation.
type AuthService interface {
	// Register creates an account and issues its first session token.
	// At least one of isOwner/isWalker must be true.
	Register(ctx context.Context, username, password string, isOwner, isWalker bool) (string, *domain.User, error)
	// Login verifies credentials and issues a session token. An unknown
	// username fails with domain.ErrInvalidCredentials, same as a wrong
	// password, so the response does not reveal which part was wrong.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout revokes a single token. Idempotent.
	Logout(ctx context.Context, token string) error
	// ValidateSession verifies the token signature and expiry, then checks
	// membership in the session store. Returns the subject user id.
	ValidateSession(ctx context.Context, token string) (string, error)
}
