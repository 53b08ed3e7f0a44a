package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHELTER_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 2, cfg.Retry.Attempts)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Services.Billing.Timeout)
	assert.False(t, cfg.Services.Auth.Remote())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shelter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9090"
retry:
  attempts: 3
services:
  billing:
    base_url: http://billing.local
    timeout: 750ms
store:
  driver: sqlite
  dsn: /tmp/shelter.db
`), 0o644))

	t.Setenv("SHELTER_HTTP_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTP.Addr, "env overrides file")
	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.True(t, cfg.Services.Billing.Remote())
	assert.Equal(t, 750*time.Millisecond, cfg.Services.Billing.Timeout)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
}

func TestValidate(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		cfg := Config{Store: StoreConfig{Driver: "mongo"}, Retry: RetryConfig{Attempts: 2}, Aggregate: AggregateConfig{Concurrency: 1}}
		assert.ErrorContains(t, cfg.Validate(), "unknown store.driver")
	})

	t.Run("postgres without dsn", func(t *testing.T) {
		cfg := Config{Store: StoreConfig{Driver: DriverPostgres}, Retry: RetryConfig{Attempts: 2}, Aggregate: AggregateConfig{Concurrency: 1}}
		assert.ErrorContains(t, cfg.Validate(), "store.dsn required")
	})

	t.Run("redis without url", func(t *testing.T) {
		cfg := Config{Store: StoreConfig{Driver: DriverRedis}, Retry: RetryConfig{Attempts: 2}, Aggregate: AggregateConfig{Concurrency: 1}}
		assert.ErrorContains(t, cfg.Validate(), "store.redis.url required")
	})

	t.Run("zero attempts", func(t *testing.T) {
		cfg := Config{Store: StoreConfig{Driver: DriverMemory}, Aggregate: AggregateConfig{Concurrency: 1}}
		assert.ErrorContains(t, cfg.Validate(), "retry.attempts")
	})
}
