package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teacher-transfer-system/internal/config"
	"teacher-transfer-system/internal/database"
	"teacher-transfer-system/internal/handler"
	"teacher-transfer-system/internal/logger"
	"teacher-transfer-system/internal/middleware"
	"teacher-transfer-system/internal/repository"
	"teacher-transfer-system/internal/router"
	"teacher-transfer-system/internal/service"
	"teacher-transfer-system/internal/storage"
)

type App struct {
	cfg    *config.Config
	db     *database.DB
	server *http.Server
}

// New wires the whole service: config, database, storage, repositories,
// services, handlers and router.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(logger.NewPrettyHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	store, err := storage.New(cfg.UploadRoot)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Pool)
	schoolRepo := repository.NewSchoolRepository(db.Pool)
	teacherRepo := repository.NewTeacherRepository(db.Pool)
	transferRepo := repository.NewTransferRepository(db.Pool)

	authService, err := service.NewAuthService(cfg.JWTSecret, cfg.JWTTTL, cfg.LockoutThreshold, cfg.LockoutDuration, userRepo)
	if err != nil {
		db.Close()
		return nil, err
	}
	schoolService := service.NewSchoolService(schoolRepo)
	teacherService := service.NewTeacherService(teacherRepo, schoolRepo, authService, store, cfg.ThumbnailRoot)
	transferService := service.NewTransferService(transferRepo, teacherRepo, schoolRepo)
	statsService := service.NewStatsService(teacherRepo, schoolRepo, transferRepo)

	authMW := middleware.NewAuthMiddleware(authService)

	mux := router.New(cfg, authMW, router.Handlers{
		Auth:      handler.NewAuthHandler(authService, teacherService, cfg.MaxUploadSize),
		Schools:   handler.NewSchoolHandler(schoolService),
		Teachers:  handler.NewTeacherHandler(teacherService, cfg.MaxUploadSize),
		Transfers: handler.NewTransferHandler(transferService),
		Stats:     handler.NewStatsHandler(statsService),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      mux,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{cfg: cfg, db: db, server: server}, nil
}

// Run serves until the context is cancelled or an interrupt arrives, then
// drains in-flight requests before closing the database.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.db.Close()
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.db.Close()
	return err
}
