package ports

import (
	"context"

	"github.com/dogwalk/marketplace/internal/core/domain"
)

// UserPatch is an explicit field-set for partial user updates. Nil fields
// are left untouched; the repository emits a parameterized update from the
// set fields only.
type UserPatch struct {
	IsOwner  *bool
	IsWalker *bool
}

// IsEmpty reports whether the patch names no fields.
func (p UserPatch) IsEmpty() bool {
	return p.IsOwner == nil && p.IsWalker == nil
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) error
	Delete(ctx context.Context, id string) error
}
