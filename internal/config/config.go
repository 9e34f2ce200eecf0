// Package config loads layered application configuration: struct
// defaults, then an optional YAML file, then CRESCENDO_ environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/crescendo-labs/backend/internal/adapters/spotify"
	"github.com/crescendo-labs/backend/internal/core/services"
)

const envPrefix = "CRESCENDO_"

// Config is the full application configuration tree.
type Config struct {
	Server    ServerConfig             `koanf:"server"`
	Database  DatabaseConfig           `koanf:"database"`
	Spotify   spotify.Config           `koanf:"spotify"`
	Google    GoogleConfig             `koanf:"google"`
	Discovery services.DiscoveryConfig `koanf:"discovery"`
	Logging   LoggingConfig            `koanf:"logging"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type GoogleConfig struct {
	ClientID string `koanf:"client_id"`
}

type LoggingConfig struct {
	Level string `koanf:"level"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database:  DatabaseConfig{Path: "crescendo.db"},
		Discovery: services.DefaultDiscoveryConfig(),
		Logging:   LoggingConfig{Level: "info"},
	}
}

// Load assembles the configuration. Precedence, lowest to highest:
// built-in defaults, the YAML file at path (skipped when path is empty
// or missing), then CRESCENDO_ environment variables where
// CRESCENDO_SPOTIFY_CLIENT_ID maps to spotify.client_id.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("config: load %s: %w", path, err)
			}
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(key string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(key, envPrefix)), "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("config: database.path is required")
	}
	if c.Discovery.MinArtistPresence < 0 || c.Discovery.MinArtistPresence > 1 {
		return fmt.Errorf("config: discovery.min_artist_presence must be within [0, 1]")
	}
	return nil
}
