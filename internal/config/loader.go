package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultPath = "./config.yaml"

// Load reads configuration from CONFIG_PATH (default ./config.yaml) and the
// environment. ENV overrides YAML, YAML overrides env-default tags. A missing
// default file is not an error: ENV and defaults are used alone.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return load(path, true)
	}
	return load(defaultPath, false)
}

// LoadFile is Load with an explicit YAML path, which must exist.
// An empty path behaves like Load.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Load()
	}
	return load(path, true)
}

func load(path string, required bool) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// normalize canonicalises case-insensitive values so YAML and ENV may be
// written loosely.
func (c *Config) normalize() {
	c.Realtime.Driver = strings.ToLower(strings.TrimSpace(c.Realtime.Driver))
	c.Realtime.Prefix = strings.Trim(strings.TrimSpace(c.Realtime.Prefix), ".:")
	c.Numbering.DefaultScope = strings.ToUpper(strings.TrimSpace(c.Numbering.DefaultScope))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Escalation.Schedule = strings.TrimSpace(c.Escalation.Schedule)
}
