// Package user provides UserStore implementations.
package user

import (
	"context"
	"sync"

	"leavehub/internal/auth/models"
	id "leavehub/pkg/domain"
	"leavehub/pkg/platform/sentinel"
)

// InMemoryUserStore keeps the default deployment and tests lightweight. It
// intentionally favors clarity over performance.
type InMemoryUserStore struct {
	mu         sync.RWMutex
	users      map[id.UserID]models.User
	byUsername map[string]id.UserID
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:      make(map[id.UserID]models.User),
		byUsername: make(map[string]id.UserID),
	}
}

// Create inserts the user, rejecting duplicate usernames under one lock so a
// racing double-registration has exactly one winner.
func (s *InMemoryUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byUsername[user.Username]; taken {
		return sentinel.ErrConflict
	}
	s.users[user.ID] = user
	s.byUsername[user.Username] = user.ID
	return nil
}

func (s *InMemoryUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byUsername[username]
	if !ok {
		return models.User{}, sentinel.ErrNotFound
	}
	return s.users[userID], nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[userID]; ok {
		return user, nil
	}
	return models.User{}, sentinel.ErrNotFound
}
