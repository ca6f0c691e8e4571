package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3500"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Token      TokenConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	LoginLimit LoginLimitConfig
	Audit      AuditConfig
}

// TokenConfig holds the two signing secrets and token lifetimes. The
// secrets are distinct on purpose: an access token must never verify
// against the refresh key or vice versa.
type TokenConfig struct {
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=technotes"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// LoginLimitConfig bounds login attempts per client IP.
type LoginLimitConfig struct {
	MaxAttempts int           `env:"LOGIN_LIMIT_MAX,    default=5"`
	Window      time.Duration `env:"LOGIN_LIMIT_WINDOW, default=60s"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Token.AccessSecret == "" || cfg.Token.RefreshSecret == "" {
		return nil, fmt.Errorf("config: ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}
	if cfg.Token.AccessSecret == cfg.Token.RefreshSecret {
		return nil, fmt.Errorf("config: access and refresh secrets must differ")
	}
	return &cfg, nil
}
