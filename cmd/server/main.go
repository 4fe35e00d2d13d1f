package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"focusorbit/backend/internal/config"
	"focusorbit/backend/internal/db"
	"focusorbit/backend/internal/handler"
	"focusorbit/backend/internal/logging"
	"focusorbit/backend/internal/middleware"
	"focusorbit/backend/internal/repository"
	"focusorbit/backend/internal/router"
	"focusorbit/backend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, database, db.MigrationSource(cfg.MigrationsDir), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	userRepo := repository.NewUserRepository(database)
	streakRepo := repository.NewStreakRepository(database)
	sessionRepo := repository.NewSessionRepository(database)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	streakService := service.NewStreakService(streakRepo)
	sessionService := service.NewSessionService(sessionRepo, streakRepo, streakService, logger.Named("sessions"))

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Profile:  handler.NewProfileHandler(service.NewProfileService(repository.NewProfileRepository(database))),
		Settings: handler.NewSettingsHandler(service.NewSettingsService(repository.NewSettingsRepository(database))),
		Streak:   handler.NewStreakHandler(streakService),
		Session:  handler.NewSessionHandler(sessionService),
		Goal:     handler.NewGoalHandler(service.NewGoalService(repository.NewGoalRepository(database), sessionRepo)),
		Role:     handler.NewRoleHandler(service.NewRoleService(repository.NewRoleRepository(database))),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go sweepLimiter(ctx, limiter, logger)

	engine := router.New(authService, handlers, router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger.Named("http"),
		RateLimiter: limiter,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("backend listening", zap.String("addr", server.Addr), zap.String("env", cfg.Env))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func sweepLimiter(ctx context.Context, limiter *middleware.RateLimiter, logger *zap.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := limiter.Sweep(); removed > 0 {
				logger.Debug("rate limiter swept", zap.Int("removed", removed))
			}
		}
	}
}
