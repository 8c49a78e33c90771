package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Missing config file must not be an error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colonyband.yaml")
	raw := "pop_count: 12\nseed: 99\nobserver_addr: \"127.0.0.1:7745\"\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.PopCount != 12 {
		t.Errorf("Expected pop_count 12, got %d", cfg.PopCount)
	}
	if cfg.Seed != 99 {
		t.Errorf("Expected seed 99, got %d", cfg.Seed)
	}
	if cfg.ObserverAddr != "127.0.0.1:7745" {
		t.Errorf("Expected observer addr, got %q", cfg.ObserverAddr)
	}
	// Untouched fields keep their defaults.
	if cfg.TicksPerSecond != Default().TicksPerSecond {
		t.Errorf("Expected default tps, got %d", cfg.TicksPerSecond)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []string{
		"ticks_per_second: 0\n",
		"map_width: 5\n",
		"pop_count: -1\n",
		"ticks_per_second: [1, 2]\n", // malformed type
	}

	dir := t.TempDir()
	for i, raw := range cases {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("Case %d: expected an error for %q", i, raw)
		}
	}
}
