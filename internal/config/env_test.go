package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{"PAYCALC_CACHE_DB", "PAYCALC_CACHE_TTL", "PAYCALC_LOG_LEVEL", "PAYCALC_STATUTORY"}

// clearEnv unsets every setting for the test. godotenv only sets variables that are not
// present, so they must be unset rather than empty.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	clearEnv(t)

	settings, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err, "A missing .env file is not an error")

	assert.Equal(t, "", settings.CacheDB)
	assert.Equal(t, 5*time.Minute, settings.CacheTTL)
	assert.Equal(t, "warn", settings.LogLevel)
	assert.Equal(t, "", settings.StatutoryFile)
}

func TestLoadEnv_FromFile(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), ".env")
	content := "PAYCALC_CACHE_DB=/var/lib/paycalc/cache.db\nPAYCALC_CACHE_TTL=90s\nPAYCALC_LOG_LEVEL=DEBUG\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	settings, err := LoadEnv(file)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/paycalc/cache.db", settings.CacheDB)
	assert.Equal(t, 90*time.Second, settings.CacheTTL)
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestLoadEnv_EnvironmentWins(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("PAYCALC_LOG_LEVEL=debug\n"), 0644))
	t.Setenv("PAYCALC_LOG_LEVEL", "error")

	settings, err := LoadEnv(file)
	require.NoError(t, err)
	assert.Equal(t, "error", settings.LogLevel)
}

func TestLoadEnv_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		value       string
		errContains string
	}{
		{"bad duration", "PAYCALC_CACHE_TTL", "five minutes", "invalid PAYCALC_CACHE_TTL"},
		{"negative duration", "PAYCALC_CACHE_TTL", "-1m", "is negative"},
		{"unknown level", "PAYCALC_LOG_LEVEL", "verbose", `invalid PAYCALC_LOG_LEVEL "verbose"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadEnv()
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}
