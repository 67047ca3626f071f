package services

import (
	"context"
	"errors"

	"github.com/Keerti2504/todo-simple/internal/models"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTodoNotFound       = errors.New("todo not found")
	ErrTitleRequired      = errors.New("title required")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidDueDate     = errors.New("invalid due date")
)

type AuthService interface {
	// Register creates a user with an argon2id password hash.
	//
	// It returns ErrUserAlreadyExists if the username is taken.
	Register(ctx context.Context, username, password string) error

	// Login authenticates the user by username and password
	// and issues a signed, time-limited token.
	//
	// It returns ErrInvalidCredentials on any mismatch without
	// revealing whether the username or the password was wrong.
	Login(ctx context.Context, username, password string) (string, error)

	// ParseToken checks the token signature and expiry and returns
	// the username the token was issued for.
	//
	// Every failure, whether the token is malformed, tampered with
	// or expired, collapses to ErrInvalidToken.
	ParseToken(token string) (string, error)
}

type TodoService interface {
	// CreateTodo validates the params, generates a fresh id and
	// persists the todo with done=false.
	//
	// It returns ErrTitleRequired, ErrInvalidPriority or
	// ErrInvalidDueDate when validation fails.
	CreateTodo(ctx context.Context, params CreateTodoParams) (*models.Todo, error)

	// ListTodos returns the owner's todos in insertion order,
	// an empty slice when there are none.
	ListTodos(ctx context.Context, owner string) ([]models.Todo, error)

	// UpdateTodo applies the fields present in the patch to the
	// owner's todo and persists the result.
	//
	// It returns ErrTodoNotFound if no todo with the given
	// id belongs to the owner.
	UpdateTodo(ctx context.Context, owner, id string, patch TodoPatch) (*models.Todo, error)

	// DeleteTodo removes the owner's todo and persists the removal.
	//
	// It returns ErrTodoNotFound if no todo with the given
	// id belongs to the owner.
	DeleteTodo(ctx context.Context, owner, id string) error
}

type CreateTodoParams struct {
	Owner    string
	Title    string
	Priority string
	DueDate  string
}

// TodoPatch carries only the fields present in an update request;
// nil fields are left unchanged.
type TodoPatch struct {
	Title    *string
	Done     *bool
	Priority *string
	DueDate  *string
}
