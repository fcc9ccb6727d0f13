package ports

import (
	"context"

	"github.com/dogwalk/marketplace/internal/core/domain"
)

// UserService defines account operations beyond authentication.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// UpdateCapabilities applies a partial update to the capability flags.
	// A patch that would leave the user with neither capability, or names no
	// fields at all, fails with a 400-class error.
	UpdateCapabilities(ctx context.Context, id string, patch UserPatch) error
	// Delete removes the account and revokes all of its live sessions.
	Delete(ctx context.Context, id string) error
}
