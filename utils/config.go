package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the simulation
type Config struct {
	WorldWidth        int    `json:"world_width"`
	WorldHeight       int    `json:"world_height"`
	CellSize          int    `json:"cell_size"`
	TickIntervalMs    int    `json:"tick_interval_ms"`
	RandomSampleSize  int    `json:"random_sample_size"`
	Seed              int64  `json:"seed"`
	StagnationHistory int    `json:"stagnation_history"`
	InitialPreset     string `json:"initial_preset"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		WorldWidth:        1080,
		WorldHeight:       720,
		CellSize:          8,
		TickIntervalMs:    100,
		RandomSampleSize:  1000,
		Seed:              0, // 0 seeds from the clock
		StagnationHistory: 5,
	}
}

// Width is the number of cell columns
func (c Config) Width() int {
	return c.WorldWidth / c.CellSize
}

// Height is the number of cell rows
func (c Config) Height() int {
	return c.WorldHeight / c.CellSize
}

// TickInterval returns the tick interval as a duration
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// Validate checks that the config describes a usable board
func (c Config) Validate() error {
	switch {
	case c.CellSize <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] cell_size must be positive, got %d", c.CellSize)
	case c.WorldWidth < c.CellSize || c.WorldHeight < c.CellSize:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] world %dx%d smaller than one cell of %d",
			c.WorldWidth, c.WorldHeight, c.CellSize)
	case c.TickIntervalMs <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] tick_interval_ms must be positive, got %d", c.TickIntervalMs)
	case c.RandomSampleSize < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] random_sample_size must not be negative, got %d", c.RandomSampleSize)
	case c.StagnationHistory < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] stagnation_history must not be negative, got %d", c.StagnationHistory)
	}
	return nil
}

// Bind attaches the overridable fields to the provided FlagSet
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.TickIntervalMs, "speed", c.TickIntervalMs, "tick interval in milliseconds")
	fs.IntVar(&c.RandomSampleSize, "sample", c.RandomSampleSize, "random sample size")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 seeds from the clock")
	fs.StringVar(&c.InitialPreset, "preset", c.InitialPreset, "preset to load at startup")
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] file: %+v", filename)
	}

	return config, nil
}
