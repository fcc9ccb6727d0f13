package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewSessionStore(rdb), mr
}

func TestSessionStore_AddContainsRemove(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, "tok-1", "user-1", time.Hour); err != nil {
		t.Fatalf("add: %v", err)
	}

	live, err := store.Contains(ctx, "tok-1")
	if err != nil || !live {
		t.Fatalf("contains tok-1: live=%v err=%v", live, err)
	}
	live, err = store.Contains(ctx, "tok-unknown")
	if err != nil || live {
		t.Fatalf("contains unknown: live=%v err=%v", live, err)
	}

	if err := store.Remove(ctx, "tok-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if live, _ := store.Contains(ctx, "tok-1"); live {
		t.Fatalf("token survived removal")
	}

	// Removing an absent token is a no-op, not an error.
	if err := store.Remove(ctx, "tok-1"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestSessionStore_TTLExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, "tok-short", "user-1", time.Minute); err != nil {
		t.Fatalf("add: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if live, _ := store.Contains(ctx, "tok-short"); live {
		t.Fatalf("expired token still live")
	}
}

func TestSessionStore_RemoveAllForUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, tok := range []string{"tok-a", "tok-b"} {
		if err := store.Add(ctx, tok, "user-1", time.Hour); err != nil {
			t.Fatalf("add %s: %v", tok, err)
		}
	}
	if err := store.Add(ctx, "tok-c", "user-2", time.Hour); err != nil {
		t.Fatalf("add tok-c: %v", err)
	}

	if err := store.RemoveAllForUser(ctx, "user-1"); err != nil {
		t.Fatalf("remove all: %v", err)
	}

	for _, tok := range []string{"tok-a", "tok-b"} {
		if live, _ := store.Contains(ctx, tok); live {
			t.Fatalf("%s survived bulk revocation", tok)
		}
	}
	if live, _ := store.Contains(ctx, "tok-c"); !live {
		t.Fatalf("another user's session was revoked")
	}

	// Revoking a user with no sessions is fine.
	if err := store.RemoveAllForUser(ctx, "user-ghost"); err != nil {
		t.Fatalf("remove all for unknown user: %v", err)
	}
}

func TestSessionStore_RemoveCleansReverseIndex(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, "tok-1", "user-1", time.Hour); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Remove(ctx, "tok-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	members, err := mr.SMembers(userSessionsKey + "user-1")
	if err != nil && err != miniredis.ErrKeyNotFound {
		t.Fatalf("smembers: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("reverse index still holds %v", members)
	}
}
