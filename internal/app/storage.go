package app

import (
	"github.com/Keerti2504/todo-simple/internal/config"
	"github.com/Keerti2504/todo-simple/internal/storage"
)

var (
	globalUserStore *storage.UserStore
	globalTodoStore *storage.TodoStore
)

func MustOpenStorage() {
	cfg := config.Global().Storage

	var err error
	globalUserStore, err = storage.OpenUserStore(globalLogger, cfg.UsersFile)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", cfg.UsersFile).
			Msg("failed to open user store")
		panic(err)
	}

	globalTodoStore, err = storage.OpenTodoStore(globalLogger, cfg.TodosFile)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", cfg.TodosFile).
			Msg("failed to open todo store")
		panic(err)
	}

	globalLogger.Info().
		Str("users", cfg.UsersFile).
		Str("todos", cfg.TodosFile).
		Msg("opened storage")
}
