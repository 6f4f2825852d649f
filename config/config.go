// Package config reads server and CLI settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port         int           `env:"PORT"                     envDefault:"8000"`
	TempDir      string        `env:"TEMP_DIR"                 envDefault:"/tmp"`
	CacheDir     string        `env:"POKEBATTLE_CACHE_DIR"`
	PokeAPIURL   string        `env:"POKEBATTLE_POKEAPI_URL"   envDefault:"https://pokeapi.co/api/v2"`
	PokedexPath  string        `env:"POKEBATTLE_POKEDEX"`
	HTTPTimeout  time.Duration `env:"POKEBATTLE_HTTP_TIMEOUT"  envDefault:"30s"`
	LiveTick     time.Duration `env:"POKEBATTLE_LIVE_TICK"     envDefault:"1s"`
	OTelEndpoint string        `env:"POKEBATTLE_OTEL_ENDPOINT"`
	GinMode      string        `env:"GIN_MODE"                 envDefault:"release"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment. CacheDir defaults to a
// pokeapi_cache directory under TempDir.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = filepath.Join(cfg.TempDir, "pokeapi_cache")
	}
	return cfg, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
