package infra

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Journal drivers.
const (
	JournalMemory   = "memory"
	JournalPostgres = "postgres"
	JournalSQLite   = "sqlite"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string   `env:"APP_ENV" envDefault:"development"`
	Port               string   `env:"PORT" envDefault:"8080"`
	JWTSecret          string   `env:"JWT_SECRET,required,notEmpty"`
	JournalDriver      string   `env:"JOURNAL_DRIVER" envDefault:"memory"`
	DatabaseURL        string   `env:"DATABASE_URL"`
	SQLitePath         string   `env:"SQLITE_PATH" envDefault:"./data/ledger.db"`
	GeoIPDBPath        string   `env:"GEOIP_DB_PATH"`
	DefaultLocale      string   `env:"DEFAULT_LOCALE" envDefault:"en"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	HTTPReadSeconds    int      `env:"HTTP_READ_TIMEOUT_SECONDS" envDefault:"15"`
	HTTPWriteSeconds   int      `env:"HTTP_WRITE_TIMEOUT_SECONDS" envDefault:"30"`
	HTTPIdleSeconds    int      `env:"HTTP_IDLE_TIMEOUT_SECONDS" envDefault:"60"`
	RateLimitPerMin    int      `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	JournalCommitMS    int      `env:"JOURNAL_COMMIT_TIMEOUT_MS" envDefault:"2000"`
}

// LoadConfig reads .env files when present and parses the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.JournalDriver = strings.ToLower(strings.TrimSpace(c.JournalDriver))
	switch c.JournalDriver {
	case JournalMemory:
	case JournalPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres journal")
		}
	case JournalSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite journal")
		}
	default:
		return fmt.Errorf("unknown JOURNAL_DRIVER %q", c.JournalDriver)
	}

	origins := c.CORSAllowedOrigins[:0]
	for _, o := range c.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORSAllowedOrigins = origins

	if c.RateLimitPerMin <= 0 {
		c.RateLimitPerMin = 120
	}
	if c.JournalCommitMS <= 0 {
		c.JournalCommitMS = 2000
	}
	return nil
}

// JournalCommitTimeout bounds one journal commit, during which the ledger
// lock is held.
func (c *Config) JournalCommitTimeout() time.Duration {
	return time.Duration(c.JournalCommitMS) * time.Millisecond
}

// HTTPReadTimeout is the server read timeout.
func (c *Config) HTTPReadTimeout() time.Duration {
	return time.Duration(c.HTTPReadSeconds) * time.Second
}

// HTTPWriteTimeout is the server write timeout.
func (c *Config) HTTPWriteTimeout() time.Duration {
	return time.Duration(c.HTTPWriteSeconds) * time.Second
}

// HTTPIdleTimeout is the keep-alive idle timeout, also used as the shutdown grace period.
func (c *Config) HTTPIdleTimeout() time.Duration {
	return time.Duration(c.HTTPIdleSeconds) * time.Second
}
