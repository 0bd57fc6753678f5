package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWritesAndAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config was not written: %v", err)
	}
	if cfg.CommandCharacter != "." || cfg.SendThrottle != 600*time.Millisecond {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadAppliesFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "username: TestBot\nrooms:\n  - games\n  - trivia\nsend_throttle: 1s\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Username != "TestBot" {
		t.Fatalf("username = %q, want TestBot", cfg.Username)
	}
	if len(cfg.Rooms) != 2 || cfg.Rooms[0] != "games" || cfg.Rooms[1] != "trivia" {
		t.Fatalf("rooms = %q", cfg.Rooms)
	}
	if cfg.SendThrottle != time.Second {
		t.Fatalf("send_throttle = %v, want 1s", cfg.SendThrottle)
	}
	// Untouched keys keep their defaults.
	if cfg.CommandCharacter != "." {
		t.Fatalf("command_character = %q, want default", cfg.CommandCharacter)
	}
}
