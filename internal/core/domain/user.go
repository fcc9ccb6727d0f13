package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNoCapabilities is returned when a registration or update would leave a
// user with neither the owner nor the walker capability.
var ErrNoCapabilities = errors.New("user must hold at least one of owner or walker")

// ErrEmptyUpdate is returned by partial updates that name no fields.
var ErrEmptyUpdate = errors.New("no fields to update")

// User models an account in the marketplace. The two capability flags are
// independent: a user may be an owner, a walker, or both, but never neither.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsOwner      bool      `json:"isOwner"`
	IsWalker     bool      `json:"isWalker"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
