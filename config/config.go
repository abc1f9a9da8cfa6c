// Package config loads the sandbox configuration from an optional YAML
// file. Missing file or missing fields fall back to the shipped defaults;
// an invalid combination is rejected before the first tick.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slowbox/slowbox/parameter"
	"github.com/slowbox/slowbox/shaping"
)

// Config is the full runtime configuration.
type Config struct {
	Field   Field    `yaml:"field"`
	Agent   AgentCfg `yaml:"agent"`
	Shaping Shaping  `yaml:"shaping"`
	Scene   SceneCfg `yaml:"scene"`
	Log     Log      `yaml:"log"`
	FPS     int      `yaml:"fps"`
	Seed    int64    `yaml:"seed"`
}

// Field is the playfield extent in world units.
type Field struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// AgentCfg tunes the controllable dot.
type AgentCfg struct {
	Radius   float64 `yaml:"radius"`
	MaxSpeed float64 `yaml:"max_speed"`
	Accel    float64 `yaml:"accel"`
	Friction float64 `yaml:"friction"`
}

// Shaping holds the initial threshold values; all three remain nudgeable
// at runtime.
type Shaping struct {
	SlowDist  float64 `yaml:"slow_dist"`
	StopDist  float64 `yaml:"stop_dist"`
	RepelGain float64 `yaml:"repel_gain"`
	Model     string  `yaml:"model"`
}

// SceneCfg tunes random scene generation.
type SceneCfg struct {
	Circles   int     `yaml:"circles"`
	RadiusMin float64 `yaml:"radius_min"`
	RadiusMax float64 `yaml:"radius_max"`
}

// Log configures the sinks.
type Log struct {
	CSVPath  string `yaml:"csv_path"`
	EventLog string `yaml:"event_log"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Field: Field{Width: parameter.FieldWidth, Height: parameter.FieldHeight},
		Agent: AgentCfg{
			Radius:   parameter.AgentRadius,
			MaxSpeed: parameter.MaxSpeed,
			Accel:    parameter.Accel,
			Friction: parameter.IdleFriction,
		},
		Shaping: Shaping{
			SlowDist:  parameter.SlowDist,
			StopDist:  parameter.StopDist,
			RepelGain: parameter.RepelGain,
			Model:     "1",
		},
		Scene: SceneCfg{
			Circles:   parameter.RandomCircles,
			RadiusMin: parameter.CircleRadiusMin,
			RadiusMax: parameter.CircleRadiusMax,
		},
		Log: Log{
			CSVPath:  "logs/vel_dist.csv",
			EventLog: "logs/slowbox.log",
		},
		FPS: parameter.DefaultFPS,
	}
}

// Load reads path over the defaults. An empty path returns the defaults
// unchanged; a missing or malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations the simulator cannot run with.
func (c Config) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("field dimensions must be positive, got %gx%g", c.Field.Width, c.Field.Height)
	}
	if c.Agent.Radius <= 0 {
		return fmt.Errorf("agent radius must be positive, got %g", c.Agent.Radius)
	}
	if c.Agent.MaxSpeed <= 0 || c.Agent.Accel <= 0 {
		return fmt.Errorf("agent speed limits must be positive")
	}
	if c.Agent.Friction <= 0 || c.Agent.Friction > 1 {
		return fmt.Errorf("friction must be in (0,1], got %g", c.Agent.Friction)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Scene.RadiusMin <= 0 || c.Scene.RadiusMax < c.Scene.RadiusMin {
		return fmt.Errorf("circle radius range invalid: [%g, %g]", c.Scene.RadiusMin, c.Scene.RadiusMax)
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := shaping.ParseModel(c.Shaping.Model); err != nil {
		return err
	}
	return nil
}

// Params converts the shaping section to engine parameters.
func (c Config) Params() shaping.Params {
	return shaping.Params{
		DSlow:     c.Shaping.SlowDist,
		DStop:     c.Shaping.StopDist,
		RepelGain: c.Shaping.RepelGain,
	}
}

// Model returns the configured initial model.
func (c Config) Model() shaping.Model {
	m, err := shaping.ParseModel(c.Shaping.Model)
	if err != nil {
		return shaping.ModelLinear
	}
	return m
}
