// Command snapshot publishes the current leaderboard as static JSON and XML
// objects to Cloudflare R2 and exits.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/retrogaming-api/config"
	"github.com/Dosada05/retrogaming-api/db"
	"github.com/Dosada05/retrogaming-api/repositories"
	"github.com/Dosada05/retrogaming-api/services"
	"github.com/Dosada05/retrogaming-api/storage"
)

const publishTimeout = 2 * time.Minute

var errR2NotConfigured = errors.New("R2 is not configured: R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME and R2_PUBLIC_BASE_URL are required")

func main() {
	logLevel := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := run(logger, logLevel); err != nil {
		logger.Error("snapshot publish failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, logLevel *slog.LevelVar) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if level, err := config.ParseLogLevel(cfg.LogLevel); err == nil {
		logLevel.Set(level)
	}
	if !cfg.SnapshotConfigured() {
		return errR2NotConfigured
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.DBConnectTimeout)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Встроенная sqlite пустая при каждом запуске.
	if cfg.DatabaseDriver == db.DriverSQLite {
		if err := db.EnsureSchema(ctx, dbConn); err != nil {
			return err
		}
		if cfg.IsDevelopment() {
			if _, err := db.Seed(ctx, dbConn, cfg.DatabaseDriver); err != nil {
				return err
			}
		}
	}

	uploader, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		return err
	}
	logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))

	leaderboardService := services.NewLeaderboardService(repositories.NewSQLScoreRepository(dbConn), logger)
	snapshotService := services.NewSnapshotService(leaderboardService, uploader, cfg.SnapshotPrefix, logger)

	result, err := snapshotService.Publish(ctx)
	if err != nil {
		return err
	}
	for _, obj := range result.Objects {
		logger.Info("snapshot object published",
			slog.String("format", obj.Format.String()),
			slog.String("key", obj.Key),
			slog.String("url", obj.URL),
			slog.String("etag", obj.ETag))
	}
	logger.Info("snapshot published", slog.Int("entries", result.Entries))
	return nil
}
