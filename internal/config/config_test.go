package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WATCHLIST_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.Debug)
	assert.Equal(t, DefaultSecretKey, cfg.SecretKey)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "data.db", cfg.DBPath)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 5, cfg.DBMaxIdleConns)
	assert.Equal(t, "session", cfg.SessionCookieName)
	assert.Equal(t, 24, cfg.SessionTTLHours)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 0, cfg.LoginRatePerMinute)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.TLSEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WATCHLIST_CONFIG", "")
	t.Setenv("WATCHLIST_PORT", "8081")
	t.Setenv("WATCHLIST_DB_DRIVER", "MySQL")
	t.Setenv("WATCHLIST_DB_MAX_OPEN_CONNS", "7")
	t.Setenv("WATCHLIST_SESSION_TTL_HOURS", "-3")
	t.Setenv("WATCHLIST_DEBUG", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, 7, cfg.DBMaxOpenConns)
	assert.Equal(t, 24, cfg.SessionTTLHours, "non-positive ttl falls back to default")
	assert.True(t, cfg.Debug)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("WATCHLIST_CONFIG", "")
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	content := []byte("port: \"9000\"\ndb:\n  path: /tmp/movies.db\nsession:\n  cookie_name: wl\nlogin:\n  rate_per_minute: 10\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/tmp/movies.db", cfg.DBPath)
	assert.Equal(t, "wl", cfg.SessionCookieName)
	assert.Equal(t, 10, cfg.LoginRatePerMinute)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{DBDriver: DriverSQLite, DBPath: "data.db", Env: "dev", SecretKey: DefaultSecretKey}
	require.NoError(t, base.Validate())

	prod := base
	prod.Env = "prod"
	assert.Error(t, prod.Validate(), "default secret rejected in prod")
	prod.SecretKey = "s3cret"
	assert.NoError(t, prod.Validate())

	bad := base
	bad.DBDriver = "oracle"
	assert.Error(t, bad.Validate())

	noPath := base
	noPath.DBPath = ""
	assert.Error(t, noPath.Validate())

	noSecret := base
	noSecret.SecretKey = ""
	assert.Error(t, noSecret.Validate(), "empty secret rejected in dev")

	halfTLS := base
	halfTLS.TLSCertFile = "cert.pem"
	assert.Error(t, halfTLS.Validate())
}
