package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full winefind configuration. Values come from an
// optional YAML file with environment variables taking precedence, so
// a deployment can run from env alone.
type Config struct {
	Addr          string  `yaml:"addr"`
	CatalogPath   string  `yaml:"catalog_path"`
	WatchCatalog  bool    `yaml:"watch_catalog"`
	FavoritesPath string  `yaml:"favorites_path"`
	DatabaseURL   string  `yaml:"database_url"`
	PIN           string  `yaml:"pin"`
	SessionSecret string  `yaml:"session_secret"`
	SessionTTL    string  `yaml:"session_ttl"`
	Metrics       Metrics `yaml:"metrics"`
}

type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

func defaults() Config {
	return Config{
		Addr:          ":8080",
		CatalogPath:   "products.csv",
		FavoritesPath: "favorites.json",
		SessionTTL:    "30m",
	}
}

// Load reads the YAML file at path (missing file is fine: defaults
// plus env) and applies env overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults + env only
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setenv(&cfg.Addr, "WINEFIND_ADDR")
	setenv(&cfg.CatalogPath, "WINEFIND_CATALOG")
	setenv(&cfg.FavoritesPath, "WINEFIND_FAVORITES")
	setenv(&cfg.DatabaseURL, "WINEFIND_DATABASE_URL")
	setenv(&cfg.PIN, "WINEFIND_PIN")
	setenv(&cfg.SessionSecret, "WINEFIND_SESSION_SECRET")
	setenv(&cfg.SessionTTL, "WINEFIND_SESSION_TTL")
	setenv(&cfg.Metrics.Token, "WINEFIND_METRICS_TOKEN")

	if v := os.Getenv("WINEFIND_WATCH_CATALOG"); v != "" {
		cfg.WatchCatalog = v == "1" || v == "true"
	}
	if v := os.Getenv("WINEFIND_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = v == "1" || v == "true"
	}
}

func setenv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.CatalogPath == "" {
		return errors.New("catalog_path is required")
	}
	if c.PIN == "" {
		return errors.New("pin is required")
	}
	if c.SessionSecret == "" {
		return errors.New("session_secret is required")
	}
	if c.DatabaseURL == "" && c.FavoritesPath == "" {
		return errors.New("favorites_path or database_url is required")
	}
	if _, err := time.ParseDuration(c.SessionTTL); err != nil {
		return fmt.Errorf("session_ttl: %w", err)
	}
	return nil
}

// SessionDuration returns the parsed session TTL. Validate has already
// checked it parses.
func (c Config) SessionDuration() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}
