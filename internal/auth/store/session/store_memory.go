// Package session provides SessionStore implementations.
package session

import (
	"context"
	"sync"

	"leavehub/internal/auth/models"
	id "leavehub/pkg/domain"
	"leavehub/pkg/platform/sentinel"
)

// InMemorySessionStore backs the default deployment and tests.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]models.Session
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[id.SessionID]models.Session)}
}

func (s *InMemorySessionStore) Create(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *InMemorySessionStore) FindByID(_ context.Context, sessionID id.SessionID) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if session, ok := s.sessions[sessionID]; ok {
		return session, nil
	}
	return models.Session{}, sentinel.ErrNotFound
}

// Delete removes the session. Deleting a session that is already gone is a
// no-op so concurrent lazy-expiry cleanups do not fail each other.
func (s *InMemorySessionStore) Delete(_ context.Context, sessionID id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
