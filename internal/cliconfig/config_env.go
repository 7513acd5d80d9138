package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (REFLOW_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("scenario", os.Getenv("REFLOW_SCENARIO"), &cfg.ScenarioPath)

	if err := s.setDuration("frame-interval", os.Getenv("REFLOW_FRAME_INTERVAL"), &cfg.FrameInterval); err != nil {
		return err
	}
	if err := s.setFloatFromString("time-scale", os.Getenv("REFLOW_TIME_SCALE"), &cfg.TimeScale); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("REFLOW_WATCH"), &cfg.Watch)
	s.setBoolFromString("debug", os.Getenv("REFLOW_DEBUG"), &cfg.Debug)

	return nil
}
