package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dogwalk/marketplace/internal/core/domain"
	"github.com/dogwalk/marketplace/internal/core/ports"
)

// UserService implements account reads, capability updates, and deletion.
type UserService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, sessions ports.SessionStore, logger zerolog.Logger) *UserService {
	return &UserService{users: users, sessions: sessions, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// UpdateCapabilities applies a partial update to the capability flags. A
// patch is rejected when it would strip a capability the user needs to keep
// at least one: clearing isOwner while the user is not a walker, clearing
// isWalker while the user is not an owner, or clearing both at once. The
// check reads the flags as stored, not as patched, so clearing one flag and
// setting the other in the same request is still rejected.
func (s *UserService) UpdateCapabilities(ctx context.Context, id string, patch ports.UserPatch) error {
	if patch.IsEmpty() {
		return domain.ErrEmptyUpdate
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	clearOwner := patch.IsOwner != nil && !*patch.IsOwner
	clearWalker := patch.IsWalker != nil && !*patch.IsWalker
	if (clearOwner && !user.IsWalker) || (clearWalker && !user.IsOwner) || (clearOwner && clearWalker) {
		return domain.ErrNoCapabilities
	}

	return s.users.Update(ctx, id, patch)
}

// Delete removes the account and revokes every live session it holds, so a
// token issued before deletion cannot be replayed afterwards.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.sessions.RemoveAllForUser(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to revoke sessions for deleted user")
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
