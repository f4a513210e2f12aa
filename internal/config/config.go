// Package config resolves environment defaults for the CLI. Flags
// always win; the environment (optionally seeded from .env files) only
// fills what the user did not pass.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/bmoura/tempotrack/internal/core/constants"
)

// Defaults holds environment-provided configuration.
type Defaults struct {
	Source          string
	Timezone        string
	CacheDir        string
	LogFile         string
	RefreshInterval time.Duration
}

const defaultTimezone = "America/Sao_Paulo"

// Load reads .env files and environment variables into Defaults.
func Load() *Defaults {
	for _, path := range envPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	return &Defaults{
		Source:          getEnvString("TEMPOTRACK_SOURCE", ""),
		Timezone:        getEnvString("TEMPOTRACK_TIMEZONE", defaultTimezone),
		CacheDir:        getEnvString("TEMPOTRACK_CACHE_DIR", defaultHomePath("cache")),
		LogFile:         getEnvString("TEMPOTRACK_LOG_FILE", defaultHomePath("logs", "app.log")),
		RefreshInterval: getEnvDuration("TEMPOTRACK_REFRESH_INTERVAL", constants.DefaultRefreshInterval),
	}
}

func envPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".tempotrack", ".env"))
	}
	return paths
}

func defaultHomePath(parts ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(append([]string{home, ".tempotrack"}, parts...)...)
}

func getEnvString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
