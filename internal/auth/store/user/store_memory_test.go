package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"leavehub/internal/auth/models"
	id "leavehub/pkg/domain"
	"leavehub/pkg/platform/sentinel"
)

type UserStoreSuite struct {
	suite.Suite
	store *InMemoryUserStore
}

func (s *UserStoreSuite) SetupTest() {
	s.store = NewInMemoryUserStore()
}

func TestUserStoreSuite(t *testing.T) {
	suite.Run(t, new(UserStoreSuite))
}

func (s *UserStoreSuite) newUser(username string) models.User {
	now := time.Now()
	return models.User{
		ID:           id.NewUserID(),
		Name:         "Ada",
		Username:     username,
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleEmployee,
		LeaveBalance: 4,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *UserStoreSuite) TestLookup() {
	s.Run("finds stored user by username and id", func() {
		user := s.newUser("ada")
		s.Require().NoError(s.store.Create(context.Background(), user))

		byUsername, err := s.store.FindByUsername(context.Background(), "ada")
		s.Require().NoError(err)
		s.Equal(user, byUsername)

		byID, err := s.store.FindByID(context.Background(), user.ID)
		s.Require().NoError(err)
		s.Equal(user, byID)
	})

	s.Run("returns ErrNotFound for unknown user", func() {
		_, err := s.store.FindByUsername(context.Background(), "ghost")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByID(context.Background(), id.NewUserID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *UserStoreSuite) TestUniqueness() {
	s.Run("second insert with same username conflicts", func() {
		s.Require().NoError(s.store.Create(context.Background(), s.newUser("ada")))

		err := s.store.Create(context.Background(), s.newUser("ada"))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("racing registrations have exactly one winner", func() {
		const racers = 16
		var wg sync.WaitGroup
		results := make(chan error, racers)

		for range racers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- s.store.Create(context.Background(), s.newUser("grace"))
			}()
		}
		wg.Wait()
		close(results)

		winners, conflicts := 0, 0
		for err := range results {
			switch {
			case err == nil:
				winners++
			case s.ErrorIs(err, sentinel.ErrConflict):
				conflicts++
			}
		}
		s.Equal(1, winners)
		s.Equal(racers-1, conflicts)
	})
}
