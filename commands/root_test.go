package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded := expandPath("~/.tempotrack/cache")
	assert.Equal(t, filepath.Join(home, ".tempotrack/cache"), expanded)

	abs := expandPath("/tmp/data.csv")
	assert.Equal(t, "/tmp/data.csv", abs)

	rel := expandPath("data.csv")
	assert.True(t, filepath.IsAbs(rel))
	assert.True(t, strings.HasSuffix(rel, "data.csv"))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, ensureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent.
	assert.NoError(t, ensureDir(dir))
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc123.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	require.NoError(t, clearCache(dir))

	_, err := os.Stat(filepath.Join(dir, "abc123.json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "keep.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "sub"))
	assert.NoError(t, err)

	// A missing directory is not an error.
	assert.NoError(t, clearCache(filepath.Join(dir, "nope")))
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["cycles"])
	assert.True(t, names["heatmap"])
	assert.True(t, names["similar"])
}

func TestFlagDefaults(t *testing.T) {
	assert.Equal(t, "table", rootCmd.PersistentFlags().Lookup("output").DefValue)
	assert.Equal(t, "0", rootCmd.Flags().Lookup("boundary-hour").DefValue)
	assert.Equal(t, "6", cyclesCmd.Flags().Lookup("boundary-hour").DefValue)
	assert.Equal(t, "6", similarCmd.Flags().Lookup("boundary-hour").DefValue)
	assert.Equal(t, "60", similarCmd.Flags().Lookup("tolerance").DefValue)
}
