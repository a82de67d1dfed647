// Package config loads server settings from defaults, an optional YAML file
// and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const envPrefix = "PORTFOLIO_"

// Config is the full server configuration.
type Config struct {
	Addr         string `yaml:"addr" env:"ADDR"`
	GinMode      string `yaml:"gin_mode" env:"GIN_MODE"`
	PublicDir    string `yaml:"public_dir" env:"PUBLIC_DIR"`
	// TemplatesDir, when set, loads templates from disk instead of the
	// embedded copies and reloads them on change.
	TemplatesDir string `yaml:"templates_dir" env:"TEMPLATES_DIR"`

	DBPath         string        `yaml:"db_path" env:"DB_PATH"`
	VisitRetention time.Duration `yaml:"visit_retention" env:"VISIT_RETENTION"`
	AdminToken     string        `yaml:"admin_token" env:"ADMIN_TOKEN"`

	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Addr:           ":8080",
		GinMode:        "release",
		PublicDir:      "./public",
		VisitRetention: 365 * 24 * time.Hour,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load builds a Config. path may be empty; a missing file at an explicit path
// is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	// PORT is what most hosts set.
	if port := os.Getenv("PORT"); port != "" && os.Getenv(envPrefix+"ADDR") == "" {
		cfg.Addr = ":" + port
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown gin mode %q", c.GinMode)
	}
	if c.VisitRetention < 0 {
		return errors.New("visit retention must not be negative")
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}

// Logger builds the process logger.
func (c Config) Logger() *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
