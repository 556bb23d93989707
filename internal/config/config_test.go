package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme != "solarized-dark" {
		t.Errorf("expected default theme 'solarized-dark', got %q", cfg.Theme)
	}
	if cfg.ServerURL != "http://localhost:5000" {
		t.Errorf("expected default server url, got %q", cfg.ServerURL)
	}
	if cfg.PollInterval != 3*time.Second {
		t.Errorf("expected poll interval 3s, got %v", cfg.PollInterval)
	}
	if cfg.HealthInterval != 15*time.Second {
		t.Errorf("expected health interval 15s, got %v", cfg.HealthInterval)
	}
	if cfg.MaxHistory != 120 {
		t.Errorf("expected max history 120, got %d", cfg.MaxHistory)
	}
	if cfg.Serve.ListenAddr != ":5000" {
		t.Errorf("expected listen addr ':5000', got %q", cfg.Serve.ListenAddr)
	}
	if cfg.Serve.FrameInterval != 2*time.Second {
		t.Errorf("expected frame interval 2s, got %v", cfg.Serve.FrameInterval)
	}
	if cfg.Serve.MaxDisappeared != 20 {
		t.Errorf("expected max disappeared 20, got %d", cfg.Serve.MaxDisappeared)
	}
	if cfg.Serve.MaxDistance != 120.0 {
		t.Errorf("expected max distance 120, got %v", cfg.Serve.MaxDistance)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	cfg := DefaultConfig()
	cfg.Theme = "dracula"
	cfg.ServerURL = "http://10.0.0.5:5000"
	cfg.PollInterval = 5 * time.Second
	cfg.Serve.ExpireAfter = 30 * time.Second

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.Theme != "dracula" {
		t.Errorf("expected theme 'dracula', got %q", loaded.Theme)
	}
	if loaded.ServerURL != "http://10.0.0.5:5000" {
		t.Errorf("expected server url to round-trip, got %q", loaded.ServerURL)
	}
	if loaded.PollInterval != 5*time.Second {
		t.Errorf("expected poll interval 5s, got %v", loaded.PollInterval)
	}
	if loaded.Serve.ExpireAfter != 30*time.Second {
		t.Errorf("expected expire after 30s, got %v", loaded.Serve.ExpireAfter)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("LoadConfig() should return defaults for missing file, got error: %v", err)
	}
	if cfg.Theme != "solarized-dark" {
		t.Errorf("expected default theme, got %q", cfg.Theme)
	}
}

func TestConfigLoadPartial(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	partial := []byte("theme = \"nord\"\npoll_interval = \"7s\"\n")
	if err := os.WriteFile(path, partial, 0600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Theme != "nord" {
		t.Errorf("expected theme 'nord', got %q", cfg.Theme)
	}
	if cfg.PollInterval != 7*time.Second {
		t.Errorf("expected poll interval 7s, got %v", cfg.PollInterval)
	}
	// Fields absent from the file keep their defaults.
	if cfg.HealthInterval != 15*time.Second {
		t.Errorf("expected default health interval, got %v", cfg.HealthInterval)
	}
	if cfg.Serve.ListenAddr != ":5000" {
		t.Errorf("expected default listen addr, got %q", cfg.Serve.ListenAddr)
	}
}

func TestConfigBadDurationFallsBack(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	if err := os.WriteFile(path, []byte("poll_interval = \"sideways\"\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.PollInterval != 3*time.Second {
		t.Errorf("unparseable duration should fall back to default, got %v", cfg.PollInterval)
	}
}
