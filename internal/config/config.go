// Package config loads the shared TOML configuration for both tally
// tools. The record file names are fixed; config only relocates the
// directory they live in and tunes display cadence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the application configuration.
type Config struct {
	Files FilesConfig `toml:"files"`
	UI    UIConfig    `toml:"ui"`
}

// FilesConfig controls where the record files live.
type FilesConfig struct {
	Directory string `toml:"directory"`
}

// UIConfig holds display tuning.
type UIConfig struct {
	TickMillis     int `toml:"tick_ms"`
	MessageSeconds int `toml:"message_seconds"`
}

// DefaultConfig returns the default configuration: record files in the
// working directory, one redraw per second, messages shown for 3s.
func DefaultConfig() *Config {
	return &Config{
		Files: FilesConfig{Directory: "."},
		UI: UIConfig{
			TickMillis:     1000,
			MessageSeconds: 3,
		},
	}
}

// Tick returns the redraw cadence for the live elapsed-time display.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.UI.TickMillis) * time.Millisecond
}

// MessageTTL returns how long transient status messages stay visible.
func (c *Config) MessageTTL() time.Duration {
	return time.Duration(c.UI.MessageSeconds) * time.Second
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config directory: %w", err)
	}
	return filepath.Join(configDir, "tally", "config.toml"), nil
}

// LoadConfig loads the configuration, writing defaults on first run.
// Missing values are filled from defaults so a partial file stays valid.
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(); err != nil {
			// Can't persist defaults; run with them anyway.
			return cfg, nil
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	cfg.fillDefaults()

	return &cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) fillDefaults() {
	defaults := DefaultConfig()

	if c.Files.Directory == "" {
		c.Files.Directory = defaults.Files.Directory
	}
	if c.UI.TickMillis <= 0 {
		c.UI.TickMillis = defaults.UI.TickMillis
	}
	if c.UI.MessageSeconds <= 0 {
		c.UI.MessageSeconds = defaults.UI.MessageSeconds
	}
}
