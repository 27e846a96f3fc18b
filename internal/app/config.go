package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior for the app.
type Config struct {
	DataDir  string `env:"WATERBUDDY_DATA_DIR"`
	LogPath  string `env:"WATERBUDDY_LOG_PATH"`
	HTTPAddr string `env:"WATERBUDDY_HTTP_ADDR"`
	Storage  string `env:"WATERBUDDY_STORAGE"`
	Profile  string `env:"WATERBUDDY_PROFILE"`
	TipsPath string `env:"WATERBUDDY_TIPS"`
}

func DefaultConfig() Config {
	return Config{
		HTTPAddr: "127.0.0.1:8080",
		Storage:  "file",
		Profile:  "default",
	}
}

// FromEnv overlays environment variables onto the defaults.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case "", "file", "sqlite":
	default:
		return fmt.Errorf("invalid storage backend %q", c.Storage)
	}
	if c.Storage == "" {
		c.Storage = "file"
	}
	if c.Profile == "" {
		c.Profile = "default"
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = "127.0.0.1:8080"
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "waterbuddy")
	}
	return nil
}
