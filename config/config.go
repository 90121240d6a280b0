package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/retrogaming-api/db"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	ServerPort int `env:"SERVER_PORT" envDefault:"8080"`

	DatabaseDriver    string        `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	DBConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigin []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	R2AccountID       string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `env:"R2_BUCKET_NAME"`
	R2PublicBaseURL   string `env:"R2_PUBLIC_BASE_URL"`
	SnapshotPrefix    string `env:"SNAPSHOT_PREFIX" envDefault:"leaderboard"`
}

// Без DATABASE_URL sqlite работает в памяти.
const defaultSQLiteDSN = "file:retrogaming?mode=memory&cache=shared"

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.AppEnv = strings.ToLower(strings.TrimSpace(c.AppEnv))
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))

	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}

	switch c.DatabaseDriver {
	case db.DriverSQLite:
		if c.DatabaseURL == "" {
			c.DatabaseURL = defaultSQLiteDSN
		}
	case db.DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (expected %q or %q)", c.DatabaseDriver, db.DriverSQLite, db.DriverPostgres)
	}

	if c.DBConnectTimeout <= 0 {
		return fmt.Errorf("DB_CONNECT_TIMEOUT must be positive, got %s", c.DBConnectTimeout)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	origins := make([]string, 0, len(c.CORSAllowedOrigin))
	for _, o := range c.CORSAllowedOrigin {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.CORSAllowedOrigin = origins

	return nil
}

// IsDevelopment reports whether sample data and status pages should be enabled.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// SnapshotConfigured reports whether every R2 setting needed by the snapshot publisher is present.
func (c *Config) SnapshotConfigured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", level)
	}
}
