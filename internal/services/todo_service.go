package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Keerti2504/todo-simple/internal/models"
	"github.com/Keerti2504/todo-simple/internal/storage"
)

type todoServiceImpl struct {
	logger zerolog.Logger
	todos  *storage.TodoStore
}

func NewTodoService(
	logger zerolog.Logger,
	todos *storage.TodoStore,
) TodoService {
	return &todoServiceImpl{
		logger: logger,
		todos:  todos,
	}
}

func (s *todoServiceImpl) CreateTodo(ctx context.Context, params CreateTodoParams) (*models.Todo, error) {
	if params.Title == "" {
		s.logger.Error().Msg("no title provided")
		return nil, ErrTitleRequired
	}

	priority := params.Priority
	if priority == "" {
		priority = models.PriorityNormal
	} else if !models.ValidPriority(priority) {
		s.logger.Error().
			Str("priority", priority).
			Msg("invalid priority")
		return nil, ErrInvalidPriority
	}

	if params.DueDate != "" && !validDueDate(params.DueDate) {
		s.logger.Error().
			Str("due_date", params.DueDate).
			Msg("invalid due date")
		return nil, ErrInvalidDueDate
	}

	todo := models.Todo{
		ID:        uuid.NewString(),
		Title:     params.Title,
		Priority:  priority,
		DueDate:   params.DueDate,
		Done:      false,
		Owner:     params.Owner,
		CreatedAt: time.Now().UTC(),
	}

	err := s.todos.Insert(todo)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert todo")
		return nil, err
	}

	s.logger.Info().
		Str("id", todo.ID).
		Str("owner", todo.Owner).
		Msg("created todo")
	return &todo, nil
}

func (s *todoServiceImpl) ListTodos(ctx context.Context, owner string) ([]models.Todo, error) {
	todos := s.todos.ListByOwner(owner)
	s.logger.Debug().
		Str("owner", owner).
		Int("count", len(todos)).
		Msg("listed todos")
	return todos, nil
}

func (s *todoServiceImpl) UpdateTodo(ctx context.Context, owner, id string, patch TodoPatch) (*models.Todo, error) {
	todo, err := s.todos.GetByIDAndOwner(id, owner)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().
				Str("id", id).
				Str("owner", owner).
				Msg("todo not found")
			return nil, ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Str("id", id).
			Msg("failed to select todo")
		return nil, err
	}

	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Done != nil {
		todo.Done = *patch.Done
	}
	if patch.Priority != nil {
		if models.ValidPriority(*patch.Priority) {
			todo.Priority = *patch.Priority
		} else {
			s.logger.Warn().
				Str("priority", *patch.Priority).
				Msg("ignoring invalid priority in patch")
		}
	}
	if patch.DueDate != nil {
		// Unlike create, an unparseable due date in a patch is
		// dropped rather than rejected.
		if validDueDate(*patch.DueDate) {
			todo.DueDate = *patch.DueDate
		} else {
			s.logger.Warn().
				Str("due_date", *patch.DueDate).
				Msg("ignoring invalid due date in patch")
		}
	}

	err = s.todos.Replace(*todo)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Str("id", todo.ID).
			Msg("failed to replace todo")
		return nil, err
	}

	s.logger.Info().
		Str("id", todo.ID).
		Msg("updated todo")
	return todo, nil
}

func (s *todoServiceImpl) DeleteTodo(ctx context.Context, owner, id string) error {
	err := s.todos.Delete(id, owner)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().
				Str("id", id).
				Str("owner", owner).
				Msg("todo not found")
			return ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Str("id", id).
			Msg("failed to delete todo")
		return err
	}

	s.logger.Info().
		Str("id", id).
		Msg("deleted todo")
	return nil
}

func validDueDate(dueDate string) bool {
	if _, err := time.Parse(time.DateOnly, dueDate); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, dueDate)
	return err == nil
}
