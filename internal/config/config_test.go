package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "http://localhost:8080/api", cfg.TaskAPI.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.TaskAPI.Timeout)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, SessionStoreCookie, cfg.Session.Store)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.GinMode())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("HTTP_HOST", "127.0.0.1")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("TASK_API_URL", "http://tasks.internal:8080/api")
	t.Setenv("TASK_API_TIMEOUT", "3s")
	t.Setenv("SESSION_STORE", SessionStoreRedis)
	t.Setenv("TZ_NAME", "Europe/London")

	cfg, err := LoadFrom("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "http://tasks.internal:8080/api", cfg.TaskAPI.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.TaskAPI.Timeout)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, "release", cfg.GinMode())
	assert.True(t, cfg.IsProduction())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", loc.String())
}

func TestLoadFromDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TASK_API_URL=http://from-dotenv/api\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TASK_API_URL") })

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv/api", cfg.TaskAPI.BaseURL)
}

func TestLoadMissingDotenvIsIgnored(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	_, err := LoadFrom("")
	assert.ErrorContains(t, err, "APP_ENV")

	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SESSION_STORE", "memcached")
	_, err = LoadFrom("")
	assert.ErrorContains(t, err, "SESSION_STORE")

	t.Setenv("SESSION_STORE", SessionStoreCookie)
	t.Setenv("TZ_NAME", "Mars/Olympus")
	_, err = LoadFrom("")
	assert.ErrorContains(t, err, "TZ_NAME")
}
