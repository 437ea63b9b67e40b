package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds the process level configuration read from the environment
type Settings struct {
	CacheDB       string
	CacheTTL      time.Duration
	LogLevel      string
	StatutoryFile string
}

// LoadEnv reads settings from the environment after loading the given .env files.
// Missing files are skipped and variables already set in the environment win.
func LoadEnv(files ...string) (Settings, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	ttl, err := time.ParseDuration(getEnv("PAYCALC_CACHE_TTL", "5m"))
	if err != nil {
		return Settings{}, fmt.Errorf("invalid PAYCALC_CACHE_TTL: %w", err)
	}
	if ttl < 0 {
		return Settings{}, fmt.Errorf("invalid PAYCALC_CACHE_TTL: %s is negative", ttl)
	}

	level := strings.ToLower(getEnv("PAYCALC_LOG_LEVEL", "warn"))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return Settings{}, fmt.Errorf("invalid PAYCALC_LOG_LEVEL %q", level)
	}

	return Settings{
		CacheDB:       getEnv("PAYCALC_CACHE_DB", ""),
		CacheTTL:      ttl,
		LogLevel:      level,
		StatutoryFile: getEnv("PAYCALC_STATUTORY", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
