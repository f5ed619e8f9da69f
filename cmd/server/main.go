package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"
	"github.com/rs/zerolog"

	"github.com/yukikurage/task-web/internal/client"
	"github.com/yukikurage/task-web/internal/config"
	apphandlers "github.com/yukikurage/task-web/internal/handlers"
	"github.com/yukikurage/task-web/internal/logger"
	"github.com/yukikurage/task-web/internal/services"
	"github.com/yukikurage/task-web/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.NewWithWriter(config.EnvProd, os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Env)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve time zone")
	}
	time.Local = loc

	// Set Gin mode
	gin.SetMode(cfg.GinMode())

	server, err := newServer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up http server")
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr()).
			Str("task_api", cfg.TaskAPI.BaseURL).
			Str("session_store", cfg.Session.Store).
			Msg("setting up http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().
				Err(err).
				Msg("failed to listen and serve http")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().
			Err(err).
			Msg("failed to shutdown http server")
		return
	}
	log.Info().Msg("shut down http server")
}

// newServer wires the session store, the task API client and the router.
func newServer(cfg *config.Config, log zerolog.Logger) (*http.Server, error) {
	store, err := session.NewStore(cfg)
	if err != nil {
		return nil, err
	}

	taskClient := client.New(
		cfg.TaskAPI.BaseURL,
		client.WithHTTPClient(&http.Client{Timeout: cfg.TaskAPI.Timeout}),
		client.WithLogger(log),
	)
	taskService := services.NewTaskService(taskClient, nil)

	router := apphandlers.NewRouter(apphandlers.RouterConfig{
		Logger:   log,
		Sessions: session.Middleware(cfg, store),
	}, taskService)

	return &http.Server{
		Addr:    cfg.Addr(),
		Handler: handlers.CompressHandler(handlers.ProxyHeaders(router)),
	}, nil
}
