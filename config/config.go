// Package config loads the TOML configuration file and the color theme.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the config file name inside the config directory
const FileName = "config.toml"

// Config is the decoded configuration with defaults applied
type Config struct {
	UI    UIConfig          `toml:"ui"`
	Theme ThemeConfig       `toml:"theme"`
	Keys  map[string]string `toml:"keys,omitempty"`
}

// UIConfig holds behavior switches
type UIConfig struct {
	// ConfirmDestructive prompts before discard, force delete, and similar
	ConfirmDestructive *bool `toml:"confirm_destructive,omitempty"`
	// CommitLimit caps how many commits are loaded into the panel
	CommitLimit int `toml:"commit_limit,omitempty"`
	// Remote used by push/pull/fetch
	Remote string `toml:"remote,omitempty"`
}

// ConfirmDestructive returns the effective setting (default true)
func (c *Config) ConfirmDestructive() bool {
	if c.UI.ConfirmDestructive == nil {
		return true
	}
	return *c.UI.ConfirmDestructive
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		UI: UIConfig{
			CommitLimit: 300,
			Remote:      "origin",
		},
		Theme: defaultThemeConfig(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/g/config.toml (or the home
// equivalent)
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "g", FileName)
}

// Load reads the config file at path. A missing file yields defaults; a
// malformed file is an error the caller surfaces at startup.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.UI.CommitLimit < 0 {
		return errors.New("commit_limit must not be negative")
	}
	if c.UI.CommitLimit == 0 {
		c.UI.CommitLimit = 300
	}
	if c.UI.Remote == "" {
		c.UI.Remote = "origin"
	}
	if _, err := c.Theme.Build(); err != nil {
		return err
	}
	return nil
}
