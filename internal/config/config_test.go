package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "http://review.internal:9000"
	cfg.History.PageSize = 25

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.Server.BaseURL != "http://review.internal:9000" {
		t.Errorf("Server.BaseURL: got %q, want %q", loaded.Server.BaseURL, "http://review.internal:9000")
	}
	if loaded.History.PageSize != 25 {
		t.Errorf("History.PageSize: got %d, want 25", loaded.History.PageSize)
	}
}

func TestDefaultConfigServer(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.BaseURL != "http://localhost:8000" {
		t.Errorf("default Server.BaseURL: got %q, want %q", cfg.Server.BaseURL, "http://localhost:8000")
	}
	if cfg.Server.RequestTimeout != 30 {
		t.Errorf("default Server.RequestTimeout: got %d, want 30", cfg.Server.RequestTimeout)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.BaseURL != DefaultConfig().Server.BaseURL {
		t.Errorf("Load on missing file: got %q, want default", cfg.Server.BaseURL)
	}
}

func TestLoadFillsZeroValuesFromDefaults(t *testing.T) {
	// Simulate an old config file without the newer fields.
	tmpDir := t.TempDir()
	oldConfig := `version: 1
server:
  base_url: http://legacy:8000
`
	configPath := filepath.Join(tmpDir, ".eareview")
	if err := os.MkdirAll(configPath, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configPath, "config.yaml"), []byte(oldConfig), 0644); err != nil {
		t.Fatalf("failed to write old config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed on old config: %v", err)
	}

	if cfg.Server.BaseURL != "http://legacy:8000" {
		t.Errorf("Server.BaseURL: got %q, want the file's value", cfg.Server.BaseURL)
	}
	if cfg.History.PageSize != 10 {
		t.Errorf("History.PageSize: got %d, want the default 10", cfg.History.PageSize)
	}
}

func TestLoadMalformedFileErrors(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".eareview")
	if err := os.MkdirAll(configPath, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configPath, "config.yaml"), []byte("server: ["), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load should fail on malformed YAML")
	}
}
