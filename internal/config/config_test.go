package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Sim.TickInterval != time.Second {
		t.Errorf("tick interval = %v, want 1s", cfg.Sim.TickInterval)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "botsim.yaml")
	data := []byte("server:\n  port: 9090\nsim:\n  fence_radius: 40\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Sim.FenceRadius != 40 {
		t.Errorf("fence radius = %v, want 40", cfg.Sim.FenceRadius)
	}
	// Unset keys keep defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, want default", cfg.Server.Host)
	}
	if cfg.Sim.TickInterval != time.Second {
		t.Errorf("tick interval = %v, want default", cfg.Sim.TickInterval)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() of a missing file should error")
	}
}
