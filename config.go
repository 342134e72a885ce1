package rowan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EngineConfig holds startup settings. Platform layers read the window and
// frame-rate fields; the engine itself uses FixedDelta and Debug. Zero
// values fall back to defaults, so a config file only needs the keys it
// changes.
type EngineConfig struct {
	WindowTitle  string `yaml:"window_title"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`

	TargetFPS int  `yaml:"target_fps"`
	VSync     bool `yaml:"vsync"`

	// FixedDelta is the physics step in seconds.
	FixedDelta float64 `yaml:"fixed_delta"`

	Debug bool `yaml:"debug"`
}

// DefaultEngineConfig returns the settings used when no config file exists:
// a 1280x720 window, 60 updates per second, vsync on.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		WindowTitle:  "rowan",
		WindowWidth:  1280,
		WindowHeight: 720,
		TargetFPS:    60,
		VSync:        true,
		FixedDelta:   1.0 / 60.0,
	}
}

// applyDefaults replaces empty and non-positive fields with their defaults.
func (c *EngineConfig) applyDefaults() {
	def := DefaultEngineConfig()
	if c.WindowTitle == "" {
		c.WindowTitle = def.WindowTitle
	}
	if c.WindowWidth <= 0 {
		c.WindowWidth = def.WindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = def.WindowHeight
	}
	if c.TargetFPS <= 0 {
		c.TargetFPS = def.TargetFPS
	}
	if c.FixedDelta <= 0 {
		c.FixedDelta = def.FixedDelta
	}
}

// LoadEngineConfig reads a YAML config file. Keys absent from the file keep
// their defaults. The returned config is usable even on error.
func LoadEngineConfig(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read engine config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse engine config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// SaveEngineConfig writes the config as YAML.
func SaveEngineConfig(path string, cfg EngineConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode engine config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write engine config: %w", err)
	}
	return nil
}
