package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("REQUEST_TIMEOUT", "")

	cfg := Load()
	if cfg.Port != "5001" {
		t.Fatalf("unexpected port: %q", cfg.Port)
	}
	if cfg.MongoDB != "campusnet" {
		t.Fatalf("unexpected db name: %q", cfg.MongoDB)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MONGO_DB", "campusnet_test")
	t.Setenv("REQUEST_TIMEOUT", "3")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("unexpected port: %q", cfg.Port)
	}
	if cfg.MongoDB != "campusnet_test" {
		t.Fatalf("unexpected db name: %q", cfg.MongoDB)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
}

func TestLoad_DurationString(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "1500ms")
	cfg := Load()
	if cfg.RequestTimeout != 1500*time.Millisecond {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
}
