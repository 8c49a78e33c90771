package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds simulation tuning. Values come from built-in defaults with an
// optional colonyband.yaml overlay; defaulting happens in one pass here, so
// the rest of the code never re-checks for missing settings.
type Config struct {
	// TicksPerSecond drives every timer in the simulation.
	TicksPerSecond int `yaml:"ticks_per_second"`

	MapWidth  int `yaml:"map_width"`
	MapHeight int `yaml:"map_height"`

	PopCount       int `yaml:"pop_count"`
	BushCount      int `yaml:"bush_count"`
	StockpileCount int `yaml:"stockpile_count"`
	HazardCount    int `yaml:"hazard_count"`

	// Seed for world generation and spawns. 0 means derive from the clock.
	Seed int64 `yaml:"seed"`

	// ObserverAddr enables the websocket observer feed when non-empty
	// (e.g., "127.0.0.1:7745"). The OBS_ADDR env var overrides it.
	ObserverAddr string `yaml:"observer_addr"`

	// ObserverEveryTicks is the snapshot broadcast interval.
	ObserverEveryTicks int `yaml:"observer_every_ticks"`
}

// DefaultConfigPath is where Load looks when no path is given.
const DefaultConfigPath = "colonyband.yaml"

// Default returns the built-in tuning.
func Default() Config {
	return Config{
		TicksPerSecond:     60,
		MapWidth:           80,
		MapHeight:          24,
		PopCount:           6,
		BushCount:          8,
		StockpileCount:     2,
		HazardCount:        2,
		ObserverEveryTicks: 6,
	}
}

// Load returns the defaults overlaid with the yaml file at path. A missing
// file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultConfigPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.TicksPerSecond <= 0 {
		return errors.New("ticks_per_second must be positive")
	}
	if c.MapWidth < 20 || c.MapHeight < 10 {
		return errors.New("map must be at least 20x10")
	}
	if c.PopCount < 0 || c.BushCount < 0 || c.StockpileCount < 0 || c.HazardCount < 0 {
		return errors.New("spawn counts must not be negative")
	}
	return nil
}
