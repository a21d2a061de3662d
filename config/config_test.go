package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
env:
  env: test
  serviceName: bookswap
  log:
    pretty: true
    level: debug
http:
  port: 8080
storage:
  driver: sqlite
  sqlite:
    path: /tmp/bookswap.db
latency:
  scale: 0.5
  getBooks: 600ms
location:
  provider: static
  lat: 12.9716
  lng: 77.5946
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bookswap.yaml"), []byte(content), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsYAMLAndEnvOverrides(t *testing.T) {
	dir := writeConfig(t, sampleConfig)
	t.Chdir(dir)
	t.Setenv("STORAGE_SQLITE_PATH", "/var/lib/bookswap.db")
	t.Setenv("LATENCY_GETBOOKS", "1s")

	cfg, err := LoadWithEnv[Config]("bookswap")
	require.NoError(t, err)

	assert.Equal(t, "bookswap", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	require.NotNil(t, cfg.Storage)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/var/lib/bookswap.db", cfg.Storage.SQLite.Path)
	require.NotNil(t, cfg.Latency)
	assert.Equal(t, time.Second, cfg.Latency.GetBooks)
	assert.InDelta(t, 0.5, cfg.Latency.Scale, 1e-9)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, LocationStatic, cfg.Location.Provider)
	assert.InDelta(t, 77.5946, cfg.Location.Lng, 1e-9)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 600*time.Millisecond, cfg.Latency.GetBooks)
	assert.Equal(t, 700*time.Millisecond, cfg.Latency.Signup)
	assert.Equal(t, LocationBrowser, cfg.Location.Provider)
	assert.Equal(t, 8*time.Second, cfg.Location.Timeout)
	assert.InDelta(t, 34.0522, cfg.Location.FallbackLat, 1e-9)
	assert.InDelta(t, -118.2437, cfg.Location.FallbackLng, 1e-9)
}
