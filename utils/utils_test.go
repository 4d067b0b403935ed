package utils

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestDefaultConfigDimensions(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.Width() != 135 || c.Height() != 90 {
		t.Fatalf("default board = %dx%d, want 135x90", c.Width(), c.Height())
	}
	if c.TickInterval() != 100*time.Millisecond {
		t.Fatalf("tick interval = %v", c.TickInterval())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cell size", func(c *Config) { c.CellSize = 0 }},
		{"world narrower than a cell", func(c *Config) { c.WorldWidth = 4 }},
		{"zero tick", func(c *Config) { c.TickIntervalMs = 0 }},
		{"negative sample", func(c *Config) { c.RandomSampleSize = -1 }},
		{"negative history", func(c *Config) { c.StagnationHistory = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"world_width": 160, "world_height": 80, "cell_size": 4, "tick_interval_ms": 50}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Width() != 40 || c.Height() != 20 || c.TickIntervalMs != 50 {
		t.Fatalf("loaded config = %+v", c)
	}
	if c.RandomSampleSize != DefaultConfig().RandomSampleSize {
		t.Fatal("missing keys should keep their defaults")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0o644)
	if _, err := LoadConfig(bad); err == nil {
		t.Fatal("expected error for malformed json")
	}

	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"tick_interval_ms": -5}`), 0o644)
	if _, err := LoadConfig(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestBind(t *testing.T) {
	c := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.Bind(fs)
	if err := fs.Parse([]string{"-speed", "25", "-preset", "glider", "-seed", "9"}); err != nil {
		t.Fatal(err)
	}
	if c.TickIntervalMs != 25 || c.InitialPreset != "glider" || c.Seed != 9 {
		t.Fatalf("flags not bound: %+v", c)
	}
}

func TestStatsUpdate(t *testing.T) {
	s := NewStats()
	s.Update(1, 10, 500*time.Millisecond)
	if s.AveragePopulation != 10 || s.GenerationsPerSecond != 2 {
		t.Fatalf("stats after first update = %+v", s)
	}
	s.Update(2, 20, 0)
	if s.AveragePopulation != 11 || s.TotalGenerations != 2 || s.ActiveCells != 20 {
		t.Fatalf("stats after second update = %+v", s)
	}
	s.Reset()
	if s.TotalGenerations != 0 || s.AveragePopulation != 0 {
		t.Fatal("Reset should zero the counters")
	}
}
