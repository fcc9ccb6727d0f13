package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dogwalk/marketplace/internal/api/metrics"
	"github.com/dogwalk/marketplace/internal/core/domain"
	"github.com/dogwalk/marketplace/internal/core/ports"
	"github.com/dogwalk/marketplace/internal/core/token"
)

// AuthService implements registration, login, and session validation.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	codec    *token.Codec
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, codec *token.Codec, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, codec: codec, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, username, password string, isOwner, isWalker bool) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !isOwner && !isWalker {
		return "", nil, domain.ErrNoCapabilities
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		IsOwner:      isOwner,
		IsWalker:     isWalker,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	tkn, err := s.issueSession(ctx, created.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", username).Msg("user registered")
	return tkn, created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		// An unknown username reads the same as a wrong password.
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return tkn, user, nil
}

func (s *AuthService) Logout(ctx context.Context, tkn string) error {
	return s.sessions.Remove(ctx, tkn)
}

// ValidateSession checks the token both ways: the signature and expiry via
// the codec, then membership in the session store. The second check rejects
// tokens whose session was revoked even though the signature still verifies.
func (s *AuthService) ValidateSession(ctx context.Context, tkn string) (string, error) {
	userID, err := s.codec.Decode(tkn)
	if err != nil {
		return "", err
	}

	live, err := s.sessions.Contains(ctx, tkn)
	if err != nil {
		return "", err
	}
	if !live {
		return "", domain.ErrUnknownSession
	}
	return userID, nil
}

// issueSession signs a token and registers it in the session store. The
// store entry carries the same lifetime as the embedded expiry claim.
func (s *AuthService) issueSession(ctx context.Context, userID string) (string, error) {
	tkn, expiresAt, err := s.codec.Issue(userID)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Add(ctx, tkn, userID, time.Until(expiresAt)); err != nil {
		return "", err
	}
	return tkn, nil
}
