package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TEMPOTRACK_SOURCE", "")
	t.Setenv("TEMPOTRACK_TIMEZONE", "")
	t.Setenv("TEMPOTRACK_REFRESH_INTERVAL", "")

	cfg := Load()
	assert.Empty(t, cfg.Source)
	assert.Equal(t, defaultTimezone, cfg.Timezone)
	assert.Equal(t, time.Hour, cfg.RefreshInterval)
	assert.NotEmpty(t, cfg.CacheDir)
	assert.NotEmpty(t, cfg.LogFile)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TEMPOTRACK_SOURCE", "https://example.com/export.csv")
	t.Setenv("TEMPOTRACK_TIMEZONE", "UTC")
	t.Setenv("TEMPOTRACK_REFRESH_INTERVAL", "30m")

	cfg := Load()
	assert.Equal(t, "https://example.com/export.csv", cfg.Source)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("TEMPOTRACK_REFRESH_INTERVAL", "soon")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.RefreshInterval)
}
