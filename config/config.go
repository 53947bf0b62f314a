// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config is the full configuration surface of the todo backend.
type Config struct {
	ListenAddr string `koanf:"listen_addr"`

	// JWKSURL is the identity provider's key set endpoint.
	JWKSURL string `koanf:"jwks_url"`

	// StorageDriver selects the todo store: memory, redis or postgres.
	StorageDriver string `koanf:"storage_driver"`
	TodosTable    string `koanf:"todos_table"`
	RedisAddr     string `koanf:"redis_addr"`
	DatabaseURL   string `koanf:"database_url"`

	AttachmentBucket    string `koanf:"attachment_s3_bucket"`
	SignedURLExpiration int    `koanf:"signed_url_expiration"`
}

func defaults() map[string]any {
	return map[string]any{
		"listen_addr":           ":8080",
		"storage_driver":        "memory",
		"todos_table":           "todos",
		"signed_url_expiration": 300,
	}
}

// Load reads configuration from environment variables. Every koanf key maps
// to its upper-cased env name, e.g. jwks_url <- JWKS_URL.
func Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.JWKSURL == "" {
		return Config{}, fmt.Errorf("JWKS_URL is required")
	}
	return cfg, nil
}

// SignedURLExpiry returns the attachment URL expiration as a duration.
func (c Config) SignedURLExpiry() time.Duration {
	return time.Duration(c.SignedURLExpiration) * time.Second
}
