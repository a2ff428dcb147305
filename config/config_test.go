package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "aurora.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeZone, cfg.TimeZone)
	assert.Equal(t, DefaultCacheVersion, cfg.CacheVersion)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aurora.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region: BC\ndata_dir: /tmp/trip\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "BC", cfg.Region)
	assert.Equal(t, "/tmp/trip", cfg.DataDir)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, filepath.Join("/tmp/trip", "cache"), cfg.CacheRoot())
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aurora.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region: [unclosed"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load("")
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Key())

	t.Setenv("GOOGLE_API_KEY", "google")
	assert.Equal(t, "google", cfg.Key())

	t.Setenv("GEMINI_API_KEY", "gemini")
	assert.Equal(t, "gemini", cfg.Key())

	cfg.APIKey = " file "
	assert.Equal(t, "file", cfg.Key())
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeZone = "UTC"
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	cfg.TimeZone = "Mars/Olympus"
	_, err = cfg.Location()
	assert.Error(t, err)
}
