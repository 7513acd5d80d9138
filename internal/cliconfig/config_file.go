package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config but uses strings for durations to make TOML friendly.
type fileConfig struct {
	Scenario      string  `toml:"scenario"`
	FrameInterval string  `toml:"frame_interval"`
	TimeScale     float64 `toml:"time_scale"`
	Watch         *bool   `toml:"watch"`
	Debug         *bool   `toml:"debug"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.reflow/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".reflow", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc fileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("scenario", fc.Scenario, &cfg.ScenarioPath)
	if err := s.setDuration("frame-interval", fc.FrameInterval, &cfg.FrameInterval); err != nil {
		return err
	}
	s.setFloat("time-scale", fc.TimeScale, &cfg.TimeScale)
	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("debug", fc.Debug, &cfg.Debug)

	return nil
}
