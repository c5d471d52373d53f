package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := DefaultConfig()
	if cfg != want {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
	if cfg.BaseURL != "https://www.fanfiction.net" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "base_url: https://mirror.example\nrate_limit_seconds: 2.5\nfacts_file: out.txt\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.BaseURL != "https://mirror.example" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.RateLimitSecs != 2.5 {
		t.Errorf("RateLimitSecs = %v", cfg.RateLimitSecs)
	}
	if cfg.FactsFile != "out.txt" {
		t.Errorf("FactsFile = %q", cfg.FactsFile)
	}
	// Fields absent from the file keep their defaults.
	if cfg.DatabaseFile != "fanscrape.db" {
		t.Errorf("DatabaseFile = %q", cfg.DatabaseFile)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: [oops"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestRateLimit(t *testing.T) {
	cfg := Config{RateLimitSecs: 0.5}
	if got := cfg.RateLimit(); got != 500*time.Millisecond {
		t.Errorf("RateLimit = %v, want 500ms", got)
	}
}
