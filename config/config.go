// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultSecret is the development signing secret used when JWT_SECRET is
// unset. Refusing to start in production with this value closes the
// weak-secret gap.
const DefaultSecret = "dev"

// Config holds the environment-driven settings for the auth service.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":9000"`
	AppEnv     string `env:"APP_ENV" envDefault:"development"`

	JWTSecret  string `env:"JWT_SECRET" envDefault:"dev"`
	CookieName string `env:"COOKIE_NAME" envDefault:"jid"`

	SkipSignatureVerification bool `env:"SKIP_SIGNATURE_VERIFICATION"`

	ChallengeTTL time.Duration `env:"CHALLENGE_TTL" envDefault:"5m"`

	RedisURL     string `env:"REDIS_URL"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/vouch.db"`
}

// Load parses the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.JWTSecret == DefaultSecret {
		if cfg.Production() {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		slog.Warn("JWT_SECRET not set; using the development default secret")
	}

	return &cfg, nil
}

// Production reports whether the service runs in production mode.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

// BypassEnabled reports whether signature verification is bypassed. Never
// true in production, regardless of the skip flag.
func (c *Config) BypassEnabled() bool {
	if c.Production() {
		return false
	}
	return c.AppEnv == "development" || c.SkipSignatureVerification
}
