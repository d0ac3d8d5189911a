package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"timeline/internal/platform/config"
)

func TestNewDerivesPaths(t *testing.T) {
	t.Parallel()
	cfg, err := config.New("/tmp/home")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DataPath != filepath.Join("/tmp/home", "timeline.json") {
		t.Fatalf("unexpected data path %s", cfg.DataPath)
	}
	if cfg.DBPath != filepath.Join("/tmp/home", ".timeline", "timeline.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty home must fail")
	}
}

func TestLoadSettingsFirstRunWritesDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".timeline", "config.yaml")
	s, err := config.LoadSettings(path)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s.HorizonDays != 7 || s.Refresh != "*/5 * * * *" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if len(s.Messages["finish"]) != 2 {
		t.Fatalf("expected default finish messages, got %v", s.Messages["finish"])
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("settings file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 perms, got %v", info.Mode().Perm())
	}
}

func TestLoadSettingsNormalizesPartialFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "horizon_days: 3\nmessages:\n  waiting: [\"break time\"]\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	s, err := config.LoadSettings(path)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s.HorizonDays != 3 {
		t.Fatalf("expected horizon 3, got %d", s.HorizonDays)
	}
	if len(s.Messages["waiting"]) != 1 || s.Messages["waiting"][0] != "break time" {
		t.Fatalf("custom waiting messages lost: %v", s.Messages["waiting"])
	}
	if len(s.Messages["ongoing"]) == 0 {
		t.Fatalf("missing states must fall back to defaults")
	}
	if s.Refresh == "" {
		t.Fatalf("refresh must be defaulted")
	}
}

func TestLoadSettingsRejectsBadCron(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("refresh: \"every minute\"\n"), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	if _, err := config.LoadSettings(path); err == nil {
		t.Fatalf("invalid cron spec must fail")
	}
}
