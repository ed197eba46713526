package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for a simulation session
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	TileSize            int           `json:"tile_size"`
	FrameRate           time.Duration `json:"frame_rate"`
	Speed               float64       `json:"speed"` // seconds per generation
	StartPaused         bool          `json:"start_paused"`
	Workers             int           `json:"workers"`
	StrictPlacement     bool          `json:"strict_placement"`
	Seed                uint64        `json:"seed"` // 0 picks a random seed
	Randomize           bool          `json:"randomize"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	MaxGenerations      int           `json:"max_generations"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               80,
		Height:              60,
		TileSize:            10,
		FrameRate:           16 * time.Millisecond,
		Speed:               0.1,
		StartPaused:         false,
		Workers:             1,
		StrictPlacement:     false,
		Seed:                0,
		Randomize:           true,
		AutoRestart:         true,
		StagnationThreshold: 5,
		MaxGenerations:      1000,
	}
}

// Validate reports the first setting that cannot drive a session
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("[Validate] grid must be positive, got %dx%d", c.Width, c.Height)
	case c.TileSize <= 0:
		return errors.Errorf("[Validate] tile_size must be positive, got %d", c.TileSize)
	case c.FrameRate <= 0:
		return errors.Errorf("[Validate] frame_rate must be positive, got %v", c.FrameRate)
	case c.Speed < 0:
		return errors.Errorf("[Validate] speed must not be negative, got %v", c.Speed)
	}
	return nil
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
		return config, errors.Wrapf(err, "[LoadConfig] invalid configuration in file: %+v", filename)
	}

	return config, nil
}
