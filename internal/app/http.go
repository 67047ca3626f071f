package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Keerti2504/todo-simple/internal/config"
	v1 "github.com/Keerti2504/todo-simple/internal/delivery/http/v1"
	"github.com/Keerti2504/todo-simple/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	jwtCfg := config.Global().JWT

	authService := services.NewAuthService(
		globalLogger,
		globalUserStore,
		[]byte(jwtCfg.Secret),
		jwtCfg.TokenTTL,
	)
	todoService := services.NewTodoService(globalLogger, globalTodoStore)
	v1Handler := v1.New(globalLogger, authService, todoService)

	router.GET("/health", v1Handler.HandleHealth)

	api := router.Group("/api")
	api.POST("/signup", v1Handler.HandleSignup)
	api.POST("/login", v1Handler.HandleLogin)

	todos := api.Group("/todos", v1Handler.HandleAuthMiddleware)
	todos.POST("", v1Handler.HandleCreateTodo)
	todos.GET("", v1Handler.HandleGetTodos)
	todos.PUT("/:id", v1Handler.HandleUpdateTodo)
	todos.DELETE("/:id", v1Handler.HandleDeleteTodo)
}
