package ports

import (
	"context"
	"time"
)

// SessionStore is the registry of live session tokens. A token that decodes
// and verifies but is absent from the store is rejected: revocation wins
// over signature validity.
//
// Implementations must be safe for concurrent use; a validate call racing an
// insert or removal observes either the full effect or none of it.
type SessionStore interface {
	// Add registers a freshly issued token for userID. The entry expires on
	// its own after ttl.
	Add(ctx context.Context, token, userID string, ttl time.Duration) error
	// Contains reports whether token is currently live.
	Contains(ctx context.Context, token string) (bool, error)
	// Remove revokes a single token. Removing an absent token is a no-op.
	Remove(ctx context.Context, token string) error
	// RemoveAllForUser revokes every live session belonging to userID, used
	// when the account is deleted.
	RemoveAllForUser(ctx context.Context, userID string) error
	Close() error
}
