package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSecretKey signs session cookies in development. Rejected when Env is "prod".
const DefaultSecretKey = "dev"

// EnvPrefix is prepended to every environment override, e.g. WATCHLIST_DB_DRIVER.
const EnvPrefix = "WATCHLIST"

// Supported values for DBDriver.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Port string

	// Env is "dev" (default) or "prod". When "prod", SecretKey must be set and not the default.
	Env string

	// Debug registers the /test route that logs generated URLs.
	Debug bool

	// SecretKey signs the session cookie.
	SecretKey string

	// DBDriver is sqlite (default), mysql or postgres.
	DBDriver string
	// DBPath is the SQLite database file, relative to the working directory unless absolute.
	DBPath string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	SessionCookieName string
	// SessionTTLHours is the session lifetime in hours (default 24).
	SessionTTLHours int

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json".
	LogFormat string
	LogLevel  string

	// LoginRatePerMinute limits POST /login per client IP. Zero disables the limiter.
	LoginRatePerMinute int

	// MetricsEnabled exposes Prometheus metrics on /metrics.
	MetricsEnabled bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("env", "dev")
	v.SetDefault("debug", false)
	v.SetDefault("secret_key", DefaultSecretKey)

	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "data.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "")
	v.SetDefault("db.name", "watchlist")
	v.SetDefault("db.user", "watchlist")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)

	v.SetDefault("session.cookie_name", "session")
	v.SetDefault("session.ttl_hours", 24)

	v.SetDefault("tls.cert_file", "")
	v.SetDefault("tls.key_file", "")

	v.SetDefault("log.format", "text")
	v.SetDefault("log.level", "info")

	v.SetDefault("login.rate_per_minute", 0)
	v.SetDefault("metrics.enabled", true)
}

// Load reads configuration from defaults, an optional YAML file and the environment,
// in increasing order of precedence. A .env file in the working directory is loaded
// into the environment first. When path is empty, WATCHLIST_CONFIG is consulted.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:      v.GetString("port"),
		Env:       v.GetString("env"),
		Debug:     v.GetBool("debug"),
		SecretKey: v.GetString("secret_key"),

		DBDriver: strings.ToLower(v.GetString("db.driver")),
		DBPath:   v.GetString("db.path"),
		DBHost:   v.GetString("db.host"),
		DBPort:   v.GetString("db.port"),
		DBName:   v.GetString("db.name"),
		DBUser:   v.GetString("db.user"),
		DBPass:   v.GetString("db.pass"),

		DBMaxOpenConns: positive(v.GetInt("db.max_open_conns"), 25),
		DBMaxIdleConns: positive(v.GetInt("db.max_idle_conns"), 5),

		SessionCookieName: v.GetString("session.cookie_name"),
		SessionTTLHours:   positive(v.GetInt("session.ttl_hours"), 24),

		TLSCertFile: v.GetString("tls.cert_file"),
		TLSKeyFile:  v.GetString("tls.key_file"),

		LogFormat: v.GetString("log.format"),
		LogLevel:  v.GetString("log.level"),

		LoginRatePerMinute: v.GetInt("login.rate_per_minute"),
		MetricsEnabled:     v.GetBool("metrics.enabled"),
	}
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "session"
	}
	return cfg, nil
}

// Validate reports configuration that must not reach a running server.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}
	if c.DBDriver == DriverSQLite && c.DBPath == "" {
		return errors.New("db.path is required for sqlite")
	}
	if c.SecretKey == "" {
		return errors.New("secret_key must not be empty")
	}
	if c.Env == "prod" && c.SecretKey == DefaultSecretKey {
		return errors.New("secret_key must be set to a non-default value when env=prod")
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("tls.cert_file and tls.key_file must be set together")
	}
	return nil
}

// SessionTTL is the lifetime of a session cookie.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// TLSEnabled reports whether the server should listen with HTTPS.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

func positive(n, fallback int) int {
	if n > 0 {
		return n
	}
	return fallback
}
