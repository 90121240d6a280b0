package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/retrogaming-api/config"
	"github.com/Dosada05/retrogaming-api/db"
	"github.com/Dosada05/retrogaming-api/handlers"
	"github.com/Dosada05/retrogaming-api/repositories"
	api "github.com/Dosada05/retrogaming-api/routes"
	"github.com/Dosada05/retrogaming-api/services"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Настройка логгера
	logLevel := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := run(logger, logLevel); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

// run держит все ресурсы под defer, поэтому выход из main происходит только после их закрытия.
func run(logger *slog.Logger, logLevel *slog.LevelVar) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if level, err := config.ParseLogLevel(cfg.LogLevel); err == nil {
		logLevel.Set(level)
	}
	logger.Info("configuration loaded",
		slog.String("env", cfg.AppEnv),
		slog.Int("port", cfg.ServerPort),
		slog.String("database_driver", cfg.DatabaseDriver))

	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.DBConnectTimeout)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
			return
		}
		logger.Info("database connection closed")
	}()

	if err := prepareStore(context.Background(), cfg, dbConn, logger); err != nil {
		return err
	}

	scoreRepo := repositories.NewSQLScoreRepository(dbConn)
	leaderboardService := services.NewLeaderboardService(scoreRepo, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{
			Logger:         logger,
			AllowedOrigins: cfg.CORSAllowedOrigin,
			Development:    cfg.IsDevelopment(),
		},
		handlers.NewLeaderboardHandler(leaderboardService, logger),
		handlers.NewDocsHandler(logger),
		handlers.NewHealthHandler(scoreRepo, logger),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, server, logger)
}

func prepareStore(ctx context.Context, cfg *config.Config, conn *sql.DB, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.DBConnectTimeout)
	defer cancel()

	if err := db.EnsureSchema(ctx, conn); err != nil {
		return fmt.Errorf("apply database schema: %w", err)
	}
	if !cfg.IsDevelopment() {
		return nil
	}
	seeded, err := db.Seed(ctx, conn, cfg.DatabaseDriver)
	if err != nil {
		return fmt.Errorf("seed sample data: %w", err)
	}
	logger.Info("sample data checked", slog.Bool("seeded", seeded))
	return nil
}

// serve работает до ошибки сервера или отмены ctx, затем гасит сервер за shutdownTimeout.
func serve(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received", slog.Duration("timeout", shutdownTimeout))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		closeErr := server.Close()
		return errors.Join(fmt.Errorf("graceful shutdown: %w", err), closeErr)
	}
	logger.Info("server shutdown complete")
	return nil
}
