// Package config loads server settings from the environment and command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ImageBackendFS = "fs"
	ImageBackendS3 = "s3"
)

// S3Config содержит параметры S3 хранилища изображений
type S3Config struct {
	Endpoint  string `env:"ENDPOINT"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	Bucket    string `env:"BUCKET"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
}

// Config содержит настройки сервера
// Значения берутся из переменных окружения SHAREALL_*, флаги имеют приоритет
type Config struct {
	S3                S3Config      `envPrefix:"SHAREALL_S3_"`
	Addr              string        `env:"SHAREALL_ADDR" envDefault:":8080"`
	StorageDriver     string        `env:"SHAREALL_STORAGE_DRIVER" envDefault:"sqlite"`
	DatabaseDSN       string        `env:"SHAREALL_DATABASE_DSN" envDefault:"shareall.db"`
	UploadPath        string        `env:"SHAREALL_UPLOAD_PATH" envDefault:"uploads"`
	ProfileFolder     string        `env:"SHAREALL_PROFILE_FOLDER" envDefault:"profile"`
	AttachmentsFolder string        `env:"SHAREALL_ATTACHMENTS_FOLDER" envDefault:"attachments"`
	ImageBackend      string        `env:"SHAREALL_IMAGE_BACKEND" envDefault:"fs"`
	LogLevel          string        `env:"SHAREALL_LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"SHAREALL_LOG_FORMAT" envDefault:"text"`
	BcryptCost        int           `env:"SHAREALL_BCRYPT_COST" envDefault:"10"`
	RateLimit         int           `env:"SHAREALL_RATE_LIMIT" envDefault:"20"`
	RateWindow        time.Duration `env:"SHAREALL_RATE_WINDOW" envDefault:"1m"`
	ShutdownTimeout   time.Duration `env:"SHAREALL_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SeedUsers         bool          `env:"SHAREALL_SEED_USERS" envDefault:"false"`
	ShowVersion       bool
}

// Load читает окружение, затем флаги из args (без имени программы)
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("shareall-server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "storage driver: sqlite or postgres")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "sqlite file path or postgres DSN")
	fs.StringVar(&cfg.UploadPath, "upload-path", cfg.UploadPath, "root directory for uploaded files")
	fs.StringVar(&cfg.ImageBackend, "images", cfg.ImageBackend, "image backend: fs or s3")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "bcrypt cost factor")
	fs.BoolVar(&cfg.SeedUsers, "seed", cfg.SeedUsers, "register development users on start")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.ShowVersion {
		return cfg, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.StorageDriver))
	}

	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is required"))
	}

	switch c.ImageBackend {
	case ImageBackendFS:
		if c.UploadPath == "" {
			errs = append(errs, errors.New("upload path is required for fs image backend"))
		}
	case ImageBackendS3:
		if c.S3.Bucket == "" {
			errs = append(errs, errors.New("S3 bucket is required for s3 image backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown image backend %q", c.ImageBackend))
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	if c.RateLimit <= 0 || c.RateWindow <= 0 {
		errs = append(errs, errors.New("rate limit and window must be positive"))
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// NewLogger создает slog логгер по настройкам уровня и формата
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return level, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
