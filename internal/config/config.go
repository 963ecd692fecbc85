// Package config loads the optional YAML settings file. Command line flags
// take precedence over anything set here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/elevate/internal/constants"
)

// Config is the settings file layout.
type Config struct {
	// Storage is a file path (.db or .json) or a PostgreSQL URL without a password
	Storage string `yaml:"storage,omitempty"`
	Debug   bool   `yaml:"debug"`

	Reminders     RemindersConfig     `yaml:"reminders"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Backups       BackupsConfig       `yaml:"backups"`
}

type RemindersConfig struct {
	Enabled bool `yaml:"enabled"`
	// Interval between reminder checks, e.g. "1m"
	Interval string `yaml:"interval"`
}

type NotificationsConfig struct {
	// Native sends alerts to the tray app in addition to the terminal
	Native bool `yaml:"native"`
}

type BackupsConfig struct {
	Max int `yaml:"max"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Reminders: RemindersConfig{
			Enabled:  true,
			Interval: constants.DefaultReminderInterval.String(),
		},
		Notifications: NotificationsConfig{Native: true},
		Backups:       BackupsConfig{Max: constants.MaxBackups},
	}
}

// Load reads the settings file at path. A missing file yields the defaults;
// keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that YAML decoding cannot.
func (c *Config) Validate() error {
	if _, err := c.ReminderInterval(); err != nil {
		return err
	}
	if c.Backups.Max < 1 {
		return fmt.Errorf("backups.max must be at least 1, got %d", c.Backups.Max)
	}
	return nil
}

// ReminderInterval parses Reminders.Interval. An empty value means the default.
func (c *Config) ReminderInterval() (time.Duration, error) {
	if c.Reminders.Interval == "" {
		return constants.DefaultReminderInterval, nil
	}
	d, err := time.ParseDuration(c.Reminders.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid reminders.interval %q: %w", c.Reminders.Interval, err)
	}
	if d < time.Second {
		return 0, fmt.Errorf("reminders.interval must be at least 1s, got %s", d)
	}
	return d, nil
}

// Save writes c to path, creating the parent directory.
func Save(c *Config, path string) error {
	path = ExpandHome(path)
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
