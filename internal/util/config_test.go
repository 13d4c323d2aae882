package util

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIURL != "http://localhost:8000" {
		t.Fatalf("wrong default url: %q", cfg.APIURL)
	}
	if cfg.APITimeout != 90*time.Second {
		t.Fatalf("wrong default timeout: %v", cfg.APITimeout)
	}
	if !cfg.Recap {
		t.Fatal("recap should default on")
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("FABLEDAY_API_URL", "https://stories.example.com")
	t.Setenv("FABLEDAY_API_TIMEOUT", "10s")
	t.Setenv("FABLEDAY_LOG_LEVEL", "debug")
	t.Setenv("FABLEDAY_RECAP", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIURL != "https://stories.example.com" {
		t.Fatalf("url not read: %q", cfg.APIURL)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Fatalf("timeout not read: %v", cfg.APITimeout)
	}
	if cfg.LogLevel != "debug" || cfg.Recap {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}
