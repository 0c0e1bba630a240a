package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Crawl.MaxItems != 300 {
		t.Fatalf("expected ceiling 300, got %d", cfg.Crawl.MaxItems)
	}
	if cfg.Crawl.DefaultDepth != 2 {
		t.Fatalf("expected default depth 2, got %d", cfg.Crawl.DefaultDepth)
	}
	if cfg.Wiki.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", cfg.Wiki.Timeout)
	}
	if cfg.Wiki.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.Wiki.BaseURL)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("crawl:\n  default_depth: 3\n  delay: 250ms\nwiki:\n  base_url: http://localhost/wiki/\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CRAWL_DEFAULT_DEPTH", "1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Crawl.DefaultDepth != 1 {
		t.Fatalf("expected env to override depth to 1, got %d", cfg.Crawl.DefaultDepth)
	}
	if cfg.Crawl.Delay != 250*time.Millisecond {
		t.Fatalf("expected delay from file, got %v", cfg.Crawl.Delay)
	}
	if cfg.Wiki.BaseURL != "http://localhost/wiki/" {
		t.Fatalf("expected base url from file, got %q", cfg.Wiki.BaseURL)
	}
	if cfg.Crawl.MaxItems != 300 {
		t.Fatalf("expected untouched default ceiling, got %d", cfg.Crawl.MaxItems)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "negative depth", mutate: func(c *Config) { c.Crawl.DefaultDepth = -1 }},
		{name: "zero ceiling", mutate: func(c *Config) { c.Crawl.MaxItems = 0 }},
		{name: "negative delay", mutate: func(c *Config) { c.Crawl.Delay = -time.Second }},
		{name: "empty base url", mutate: func(c *Config) { c.Wiki.BaseURL = "" }},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}
