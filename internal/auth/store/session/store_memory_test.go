package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"leavehub/internal/auth/models"
	id "leavehub/pkg/domain"
	"leavehub/pkg/platform/sentinel"
)

type SessionStoreSuite struct {
	suite.Suite
	store *InMemorySessionStore
}

func (s *SessionStoreSuite) SetupTest() {
	s.store = NewInMemorySessionStore()
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

func (s *SessionStoreSuite) newSession(ttl time.Duration) models.Session {
	now := time.Now()
	return models.Session{
		ID:        id.NewSessionID(),
		UserID:    id.NewUserID(),
		Device:    "Firefox on Linux",
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *SessionStoreSuite) TestLookup() {
	s.Run("returns stored session when found", func() {
		session := s.newSession(2 * time.Minute)
		s.Require().NoError(s.store.Create(context.Background(), session))

		found, err := s.store.FindByID(context.Background(), session.ID)
		s.Require().NoError(err)
		s.Equal(session, found)
	})

	s.Run("returns ErrNotFound when session does not exist", func() {
		_, err := s.store.FindByID(context.Background(), id.NewSessionID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *SessionStoreSuite) TestDeleteIsIdempotent() {
	session := s.newSession(2 * time.Minute)
	s.Require().NoError(s.store.Create(context.Background(), session))

	s.Require().NoError(s.store.Delete(context.Background(), session.ID))

	_, err := s.store.FindByID(context.Background(), session.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	// Second delete of the same session must be a no-op, not an error.
	s.Require().NoError(s.store.Delete(context.Background(), session.ID))
}
