package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/elevate/internal/constants"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Reminders.Enabled || !cfg.Notifications.Native || cfg.Backups.Max != constants.MaxBackups {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if d, _ := cfg.ReminderInterval(); d != constants.DefaultReminderInterval {
		t.Errorf("interval = %v", d)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, c *Config)
		wantErr string
	}{
		{
			name:    "partial file keeps defaults",
			content: "storage: /tmp/habits.json\ndebug: true\n",
			check: func(t *testing.T, c *Config) {
				if c.Storage != "/tmp/habits.json" || !c.Debug {
					t.Errorf("got %+v", c)
				}
				if !c.Reminders.Enabled || c.Backups.Max != constants.MaxBackups {
					t.Errorf("defaults lost: %+v", c)
				}
			},
		},
		{
			name:    "reminders and backups",
			content: "reminders:\n  enabled: false\n  interval: 30s\nnotifications:\n  native: false\nbackups:\n  max: 3\n",
			check: func(t *testing.T, c *Config) {
				d, err := c.ReminderInterval()
				if err != nil || d != 30*time.Second {
					t.Errorf("interval = %v, %v", d, err)
				}
				if c.Reminders.Enabled || c.Notifications.Native || c.Backups.Max != 3 {
					t.Errorf("got %+v", c)
				}
			},
		},
		{name: "bad yaml", content: "reminders: [", wantErr: "parsing YAML"},
		{name: "bad interval", content: "reminders:\n  interval: soon\n", wantErr: "invalid reminders.interval"},
		{name: "tiny interval", content: "reminders:\n  interval: 10ms\n", wantErr: "at least 1s"},
		{name: "zero backups", content: "backups:\n  max: 0\n", wantErr: "backups.max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Storage = "/data/elevate.db"
	cfg.Backups.Max = 5

	if err := Save(cfg, path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Storage != cfg.Storage || got.Backups.Max != 5 || !got.Reminders.Enabled {
		t.Errorf("round trip = %+v", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/y"); got != filepath.Join(home, "x", "y") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("absolute path changed: %q", got)
	}
	if got := ExpandHome("~user/x"); got != "~user/x" {
		t.Errorf("~user should be left alone: %q", got)
	}
}
