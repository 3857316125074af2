package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	app "github.com/kode4food/sluice"
	"github.com/kode4food/sluice/internal/auth"
	"github.com/kode4food/sluice/internal/config"
	"github.com/kode4food/sluice/internal/engine"
	"github.com/kode4food/sluice/internal/server"
	"github.com/kode4food/sluice/internal/tasks"
	"github.com/kode4food/sluice/pkg/events"
	"github.com/kode4food/sluice/pkg/log"
	"github.com/kode4food/sluice/pkg/util/call"
)

type sluice struct {
	cfg        *config.Config
	registry   *engine.Registry
	store      *engine.Store
	hub        *events.Hub
	engine     *engine.Engine
	auth       *auth.Service
	apiServer  *server.Server
	httpServer *http.Server
	quit       chan os.Signal
}

var ErrCreateAuthService = errors.New("failed to create auth service")

func main() {
	cfg := config.NewDefaultConfig()
	if err := call.Perform(cfg.LoadFromEnv, cfg.Validate); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}

	s := &sluice{
		cfg:  cfg,
		quit: make(chan os.Signal, 1),
	}
	s.setupLogging()

	if err := s.run(); err != nil {
		slog.Error("Failed to start application", log.Error(err))
		os.Exit(1)
	}
}

func (s *sluice) run() error {
	if err := s.initialize(); err != nil {
		return err
	}
	s.startServer()

	signal.Notify(s.quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(s.quit)
	<-s.quit

	s.shutdown()
	return nil
}

func (s *sluice) setupLogging() {
	level := log.ParseLevel(s.cfg.LogLevel)
	logger := log.NewWithLevel(
		app.Name, s.cfg.Environment, app.Version, level,
	)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level)

	slog.Info("Sluice engine starting",
		slog.String("log_level", s.cfg.LogLevel))

	slog.Info("Configuration loaded",
		slog.String("api_host", s.cfg.APIHost),
		slog.Int("api_port", s.cfg.APIPort),
		slog.Int64("task_timeout_secs", s.cfg.TaskTimeout),
		slog.Bool("rate_limit_enabled", s.cfg.RateLimitEnabled),
		slog.Bool("security_headers", s.cfg.SecurityHeaders))
}

func (s *sluice) initialize() error {
	s.registry = engine.NewRegistry()
	s.store = engine.NewStore()
	s.hub = events.NewHub()
	s.engine = engine.New(s.registry, s.store, s.hub, s.cfg)

	tasks.RegisterAll(s.registry)

	authSvc, err := auth.NewService(s.cfg.AuthSecret, s.cfg.TokenExpiry())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateAuthService, err)
	}
	s.auth = authSvc
	return nil
}

func (s *sluice) startServer() {
	s.apiServer = server.NewServer(s.engine, s.auth, s.hub, s.cfg)
	mux := s.apiServer.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.APIHost, s.cfg.APIPort),
		Handler: mux,
	}

	go func() {
		slog.Info("HTTP server starting",
			slog.String("addr", s.httpServer.Addr))
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", log.Error(err))
		}
	}()
}

func (s *sluice) shutdown() {
	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(
		context.Background(), s.cfg.ShutdownTimeout,
	)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", log.Error(err))
	}

	s.apiServer.CloseWebSockets()
	s.hub.Close()

	slog.Info("Server exited")
}
