package storage

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/Keerti2504/todo-simple/internal/models"
)

type TodoStore struct {
	logger zerolog.Logger
	path   string

	mu    sync.Mutex
	todos []models.Todo
}

func OpenTodoStore(logger zerolog.Logger, path string) (*TodoStore, error) {
	s := &TodoStore{
		logger: logger,
		path:   path,
		todos:  []models.Todo{},
	}

	err := loadJSON(path, &s.todos)
	if err != nil {
		return nil, err
	}
	if s.todos == nil {
		s.todos = []models.Todo{}
	}

	logger.Debug().
		Str("path", path).
		Int("count", len(s.todos)).
		Msg("loaded todos")
	return s, nil
}

func (s *TodoStore) Insert(todo models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos = append(s.todos, todo)
	err := flushJSON(s.path, s.todos)
	if err != nil {
		s.todos = s.todos[:len(s.todos)-1]
		return err
	}

	s.logger.Debug().
		Str("id", todo.ID).
		Str("owner", todo.Owner).
		Msg("inserted todo")
	return nil
}

// ListByOwner returns the owner's todos in insertion order.
func (s *TodoStore) ListByOwner(owner string) []models.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := make([]models.Todo, 0)
	for i := range s.todos {
		if s.todos[i].Owner == owner {
			todos = append(todos, s.todos[i])
		}
	}
	return todos
}

func (s *TodoStore) GetByIDAndOwner(id, owner string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.todos {
		if s.todos[i].ID == id && s.todos[i].Owner == owner {
			todo := s.todos[i]
			return &todo, nil
		}
	}
	return nil, ErrNotFound
}

// Replace swaps the stored record matching the todo's id and owner.
func (s *TodoStore) Replace(todo models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.todos {
		if s.todos[i].ID == todo.ID && s.todos[i].Owner == todo.Owner {
			prev := s.todos[i]
			s.todos[i] = todo

			err := flushJSON(s.path, s.todos)
			if err != nil {
				s.todos[i] = prev
				return err
			}

			s.logger.Debug().
				Str("id", todo.ID).
				Msg("replaced todo")
			return nil
		}
	}
	return ErrNotFound
}

func (s *TodoStore) Delete(id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.todos {
		if s.todos[i].ID == id && s.todos[i].Owner == owner {
			next := make([]models.Todo, 0, len(s.todos)-1)
			next = append(next, s.todos[:i]...)
			next = append(next, s.todos[i+1:]...)

			prev := s.todos
			s.todos = next

			err := flushJSON(s.path, s.todos)
			if err != nil {
				s.todos = prev
				return err
			}

			s.logger.Debug().
				Str("id", id).
				Msg("deleted todo")
			return nil
		}
	}
	return ErrNotFound
}
