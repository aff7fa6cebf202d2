package server

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	ferrors "github.com/bson/filtergen/pkg/errors"
)

// Environment variables read by LoadConfig.
const (
	EnvAddr     = "FILTERGEN_ADDR"
	EnvRedisURL = "FILTERGEN_REDIS_URL"
	EnvCacheTTL = "FILTERGEN_CACHE_TTL"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

// Config holds server configuration.
type Config struct {
	Addr     string
	RedisURL string // empty disables caching
	CacheTTL time.Duration
}

// LoadConfig reads configuration from the environment after loading any
// of the given .env files that exist (".env" when none are named).
// Variables already set in the environment win over file values.
func LoadConfig(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.Wrap(ferrors.ErrCodeInvalidParameter, err, "load %s", f)
		}
	}

	cfg := &Config{
		Addr:     getEnv(EnvAddr, DefaultAddr),
		RedisURL: os.Getenv(EnvRedisURL),
	}
	if ttl := os.Getenv(EnvCacheTTL); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeInvalidParameter, err, "%s", EnvCacheTTL)
		}
		cfg.CacheTTL = d
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
