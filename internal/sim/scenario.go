package sim

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Scenario is a scripted sequence of action submissions replayed against
// a frame-batched dispatcher pipeline.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step submits one action at a time offset from the start of the run.
type Step struct {
	At       time.Duration
	Target   string
	Kind     string
	Payload  string
	Deferred bool
}

// scenarioFile mirrors Scenario but uses strings for durations to make
// TOML friendly.
type scenarioFile struct {
	Name  string     `toml:"name"`
	Steps []stepFile `toml:"steps"`
}

type stepFile struct {
	At       string `toml:"at"`
	Target   string `toml:"target"`
	Kind     string `toml:"kind"`
	Payload  string `toml:"payload"`
	Deferred *bool  `toml:"deferred"`
}

// Load reads and parses a TOML scenario file.
func Load(path string) (Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	return Parse(b)
}

// Parse parses TOML scenario bytes.
func Parse(b []byte) (Scenario, error) {
	var sf scenarioFile
	if err := toml.Unmarshal(b, &sf); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}

	sc := Scenario{Name: sf.Name}
	for i, s := range sf.Steps {
		if s.Kind == "" {
			return Scenario{}, fmt.Errorf("step %d: kind is required", i)
		}
		step := Step{
			Target:   s.Target,
			Kind:     s.Kind,
			Payload:  s.Payload,
			Deferred: true,
		}
		if step.Target == "" {
			step.Target = "main"
		}
		if s.Deferred != nil {
			step.Deferred = *s.Deferred
		}
		if s.At != "" {
			d, err := time.ParseDuration(s.At)
			if err != nil {
				return Scenario{}, fmt.Errorf("step %d: invalid at: %w", i, err)
			}
			if d < 0 {
				return Scenario{}, fmt.Errorf("step %d: at must not be negative", i)
			}
			step.At = d
		}
		sc.Steps = append(sc.Steps, step)
	}
	if len(sc.Steps) == 0 {
		return Scenario{}, fmt.Errorf("scenario has no steps")
	}
	return sc, nil
}

// Runtime returns the offset of the last step.
func (sc Scenario) Runtime() time.Duration {
	var max time.Duration
	for _, s := range sc.Steps {
		if s.At > max {
			max = s.At
		}
	}
	return max
}
