package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Keerti2504/todo-simple/internal/models"
	"github.com/Keerti2504/todo-simple/internal/services"
)

type todoResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority"`
	DueDate   string    `json:"dueDate,omitempty"`
	Done      bool      `json:"done"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

func newTodoResponse(todo *models.Todo) todoResponse {
	return todoResponse{
		ID:        todo.ID,
		Title:     todo.Title,
		Priority:  todo.Priority,
		DueDate:   todo.DueDate,
		Done:      todo.Done,
		User:      todo.Owner,
		CreatedAt: todo.CreatedAt,
	}
}

type createTodoRequest struct {
	Title    string `json:"title"`
	Priority string `json:"priority,omitempty"`
	DueDate  string `json:"dueDate,omitempty"`
}

func (h *handlerImpl) HandleCreateTodo(c *gin.Context) {
	username, exists := getStringFromContext(c, usernameCtxKey)
	if !exists {
		h.logger.Error().Msg("no username found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req createTodoRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	todo, err := h.todos.CreateTodo(c, services.CreateTodoParams{
		Owner:    username,
		Title:    req.Title,
		Priority: req.Priority,
		DueDate:  req.DueDate,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create todo")
		switch {
		case errors.Is(err, services.ErrTitleRequired),
			errors.Is(err, services.ErrInvalidPriority),
			errors.Is(err, services.ErrInvalidDueDate):
			abort(c, newBadRequestError(err.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, newTodoResponse(todo))
}

func (h *handlerImpl) HandleGetTodos(c *gin.Context) {
	username, exists := getStringFromContext(c, usernameCtxKey)
	if !exists {
		h.logger.Error().Msg("no username found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	todos, err := h.todos.ListTodos(c, username)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list todos")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	// Always a JSON array, never null.
	response := make([]todoResponse, len(todos))
	for i := range todos {
		response[i] = newTodoResponse(&todos[i])
	}

	c.JSON(http.StatusOK, response)
}

type updateTodoRequest struct {
	Title    *string `json:"title,omitempty"`
	Done     *bool   `json:"done,omitempty"`
	Priority *string `json:"priority,omitempty"`
	DueDate  *string `json:"dueDate,omitempty"`
}

func (h *handlerImpl) HandleUpdateTodo(c *gin.Context) {
	username, exists := getStringFromContext(c, usernameCtxKey)
	if !exists {
		h.logger.Error().Msg("no username found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	todoID := c.Param("id")
	if todoID == "" {
		h.logger.Error().Msg("no todo id provided")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	var req updateTodoRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	todo, err := h.todos.UpdateTodo(c, username, todoID, services.TodoPatch{
		Title:    req.Title,
		Done:     req.Done,
		Priority: req.Priority,
		DueDate:  req.DueDate,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("id", todoID).
			Msg("failed to update todo")
		switch {
		case errors.Is(err, services.ErrTodoNotFound):
			abort(c, newNotFoundError(services.ErrTodoNotFound.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

func (h *handlerImpl) HandleDeleteTodo(c *gin.Context) {
	username, exists := getStringFromContext(c, usernameCtxKey)
	if !exists {
		h.logger.Error().Msg("no username found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	todoID := c.Param("id")
	if todoID == "" {
		h.logger.Error().Msg("no todo id provided")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err := h.todos.DeleteTodo(c, username, todoID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("id", todoID).
			Msg("failed to delete todo")
		switch {
		case errors.Is(err, services.ErrTodoNotFound):
			abort(c, newNotFoundError(services.ErrTodoNotFound.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.Status(http.StatusNoContent)
}
