// Package config loads server configuration from RPG_SHEET_* environment
// variables.
package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// Storage backends
const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config holds everything the server needs to start
type Config struct {
	GRPCPort int `env:"RPG_SHEET_GRPC_PORT" envDefault:"50051"`

	Storage string `env:"RPG_SHEET_STORAGE" envDefault:"redis"`

	RedisAddrs    []string `env:"RPG_SHEET_REDIS_ADDRS" envSeparator:"," envDefault:"localhost:6379"`
	RedisPoolSize int      `env:"RPG_SHEET_REDIS_POOL_SIZE" envDefault:"10"`
	RedisTLS      bool     `env:"RPG_SHEET_REDIS_TLS"`

	SQLitePath string `env:"RPG_SHEET_SQLITE_PATH" envDefault:"rpg-sheet.db"`

	LogLevel  string `env:"RPG_SHEET_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"RPG_SHEET_LOG_FORMAT" envDefault:"json"`
}

// Load parses the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return cfg, nil
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		vb.Fieldf("grpc_port", "must be between 1 and 65535, got %d", c.GRPCPort)
	}
	errors.ValidateEnum("storage", c.Storage, []string{StorageRedis, StorageSQLite}, vb)
	switch c.Storage {
	case StorageRedis:
		if len(c.RedisAddrs) == 0 {
			vb.RequiredField("redis_addrs")
		}
		for _, addr := range c.RedisAddrs {
			if strings.TrimSpace(addr) == "" {
				vb.Field("redis_addrs", "must not contain empty addresses")
				break
			}
		}
	case StorageSQLite:
		errors.ValidateRequired("sqlite_path", c.SQLitePath, vb)
	}
	errors.ValidateEnum("log_format", c.LogFormat, []string{"json", "text"}, vb)
	if _, err := c.SlogLevel(); err != nil {
		vb.Fieldf("log_level", "unknown level %q", c.LogLevel)
	}
	return vb.Build()
}

// SlogLevel parses LogLevel (debug, info, warn, error)
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}
