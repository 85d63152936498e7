package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	DirectoryBackend string `env:"DIRECTORY_BACKEND" envDefault:"memory"`
	DatabaseDSN      string `env:"DATABASE_DSN"`
	SeedDemoUsers    bool   `env:"SEED_DEMO_USERS" envDefault:"true"`

	MarkerBackend string        `env:"MARKER_BACKEND" envDefault:"memory"`
	MarkerTTL     time.Duration `env:"MARKER_TTL" envDefault:"0s"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`

	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DirectoryBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("config: DATABASE_DSN is required for the postgres directory")
		}
	default:
		return fmt.Errorf("config: unknown DIRECTORY_BACKEND %q", c.DirectoryBackend)
	}

	switch c.MarkerBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config: REDIS_ADDR is required for the redis marker store")
		}
	default:
		return fmt.Errorf("config: unknown MARKER_BACKEND %q", c.MarkerBackend)
	}

	if c.MarkerTTL < 0 {
		return fmt.Errorf("config: MARKER_TTL must not be negative")
	}
	return nil
}
