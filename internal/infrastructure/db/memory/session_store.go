// Package memory provides a map-backed session store for tests and
// single-node deployments where Redis is not worth running.
package memory

import (
	"context"
	"sync"
	"time"
)

type sessionEntry struct {
	userID    string
	expiresAt time.Time
}

// SessionStore keeps live tokens in process memory behind a RWMutex, so a
// validate call racing an insert or removal never observes a partial
// mutation. Expired entries are dropped lazily on lookup.
type SessionStore struct {
	mu     sync.RWMutex
	tokens map[string]sessionEntry
	byUser map[string]map[string]struct{}
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		tokens: make(map[string]sessionEntry),
		byUser: make(map[string]map[string]struct{}),
	}
}

func (s *SessionStore) Add(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = sessionEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	if s.byUser[userID] == nil {
		s.byUser[userID] = make(map[string]struct{})
	}
	s.byUser[userID][token] = struct{}{}
	return nil
}

func (s *SessionStore) Contains(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	entry, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		s.removeLocked(token)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (s *SessionStore) Remove(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(token)
	return nil
}

func (s *SessionStore) RemoveAllForUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token := range s.byUser[userID] {
		delete(s.tokens, token)
	}
	delete(s.byUser, userID)
	return nil
}

func (s *SessionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]sessionEntry)
	s.byUser = make(map[string]map[string]struct{})
	return nil
}

// removeLocked deletes a token and its reverse index entry. Caller holds mu.
func (s *SessionStore) removeLocked(token string) {
	entry, ok := s.tokens[token]
	if !ok {
		return
	}
	delete(s.tokens, token)
	if set := s.byUser[entry.userID]; set != nil {
		delete(set, token)
		if len(set) == 0 {
			delete(s.byUser, entry.userID)
		}
	}
}
