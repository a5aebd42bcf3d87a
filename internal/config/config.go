// Package config reads server settings from the environment, after loading
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"evault/internal/keys"
	"evault/internal/storage"
)

const (
	DefaultAddr           = ":5000"
	DefaultMaxUploadBytes = 200 << 20 // 200 MiB
	DefaultRateLimit      = 120       // requests per minute per IP
)

type Config struct {
	Addr           string
	KeyEnv         string // variable holding the container key
	Storage        storage.Config
	MaxUploadBytes int64
	RateLimit      int
	LogLevel       string
}

// Load reads .env files (missing files are ignored) and then the
// environment. Variables already set in the environment win over .env.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:     envOrDefault("EVAULT_ADDR", DefaultAddr),
		KeyEnv:   envOrDefault("EVAULT_KEY_ENV", keys.DefaultEnv),
		Storage:  storage.DefaultConfig,
		LogLevel: envOrDefault("LOG_LEVEL", "info"),
	}

	cfg.Storage.Backend = strings.ToLower(envOrDefault("EVAULT_STORAGE", cfg.Storage.Backend))
	cfg.Storage.Dir = envOrDefault("EVAULT_STORAGE_DIR", cfg.Storage.Dir)
	cfg.Storage.Bucket = envOrDefault("EVAULT_S3_BUCKET", "")
	cfg.Storage.Prefix = envOrDefault("EVAULT_S3_PREFIX", cfg.Storage.Prefix)
	cfg.Storage.Region = envOrDefault("AWS_REGION", "")

	var err error
	if cfg.MaxUploadBytes, err = envInt64("EVAULT_MAX_UPLOAD_BYTES", DefaultMaxUploadBytes); err != nil {
		return nil, err
	}
	rate, err := envInt64("EVAULT_RATE_LIMIT", DefaultRateLimit)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit = int(rate)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "local":
		if c.Storage.Dir == "" {
			return errors.New("EVAULT_STORAGE_DIR must not be empty")
		}
	case "s3":
		if c.Storage.Bucket == "" {
			return errors.New("EVAULT_S3_BUCKET is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("EVAULT_MAX_UPLOAD_BYTES must be positive")
	}
	if c.RateLimit < 0 {
		return errors.New("EVAULT_RATE_LIMIT must not be negative")
	}
	return nil
}

// envOrDefault returns the trimmed value of the given environment variable or
// the provided default when unset/empty.
func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt64(key string, def int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
