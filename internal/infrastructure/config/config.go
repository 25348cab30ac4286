package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SigningKey signs access tokens. Required outside development.
	SigningKey string        `env:"JWT_SECRET"`
	AccessTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=720h"`

	// RefreshCookie controls whether the raw refresh secret travels via an
	// HTTP-only cookie (default) or the response body.
	RefreshCookie bool   `env:"REFRESH_COOKIE, default=true"`
	CookieDomain  string `env:"COOKIE_DOMAIN"`

	// DisableAuth substitutes a fixed identity instead of verifying access
	// tokens. Development and test only; refused in production.
	DisableAuth       bool   `env:"DISABLE_AUTH,         default=false"`
	DisableAuthUserID string `env:"DISABLE_AUTH_USER_ID, default=1"`

	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL, default=1h"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ledger"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Production reports whether the service runs with the production profile.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Validate rejects configurations that must never reach a deployed
// environment.
func (c *Config) Validate() error {
	if c.Production() && c.SigningKey == "" {
		return fmt.Errorf("config: JWT_SECRET is required in production")
	}
	if c.Production() && c.DisableAuth {
		return fmt.Errorf("config: DISABLE_AUTH must not be enabled in production")
	}
	return nil
}
