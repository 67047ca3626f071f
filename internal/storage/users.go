package storage

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/Keerti2504/todo-simple/internal/models"
)

type UserStore struct {
	logger zerolog.Logger
	path   string

	mu    sync.Mutex
	users []models.User
}

func OpenUserStore(logger zerolog.Logger, path string) (*UserStore, error) {
	s := &UserStore{
		logger: logger,
		path:   path,
		users:  []models.User{},
	}

	err := loadJSON(path, &s.users)
	if err != nil {
		return nil, err
	}
	if s.users == nil {
		s.users = []models.User{}
	}

	logger.Debug().
		Str("path", path).
		Int("count", len(s.users)).
		Msg("loaded users")
	return s, nil
}

// Insert checks for a duplicate username and appends under the same
// lock, so two concurrent signups cannot both pass the check.
func (s *UserStore) Insert(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Username == user.Username {
			return ErrAlreadyExists
		}
	}

	s.users = append(s.users, user)
	err := flushJSON(s.path, s.users)
	if err != nil {
		s.users = s.users[:len(s.users)-1]
		return err
	}

	s.logger.Debug().
		Str("username", user.Username).
		Msg("inserted user")
	return nil
}

func (s *UserStore) GetByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Username == username {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}
