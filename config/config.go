// Package config loads the YAML documents that describe a world and its
// agents, applying one embedded defaults table so every tunable has a
// sane value before a document overrides it.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// WorldConfig describes the shared physics world.
type WorldConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
	FPS    int     `yaml:"fps"`
}

// GridConfig sizes an agent's certainty-value occupancy grid.
type GridConfig struct {
	Width int `yaml:"width"`
}

// SensorConfig sizes an agent's ultrasonic array.
type SensorConfig struct {
	Count int     `yaml:"count"`
	Range float64 `yaml:"range"`
}

// GoalConfig places a VFH agent's target in world coordinates.
type GoalConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// WaypointConfig places a patrol agent's second waypoint; the first is
// the agent's initial (x,y).
type WaypointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// VFHTuning exposes the pipeline's tuning knobs so they are overridable
// per agent rather than hardwired constants.
type VFHTuning struct {
	WindowSize         int     `yaml:"window_size"`
	AlphaDeg           float64 `yaml:"alpha_deg"`
	SmoothingHalfWidth int     `yaml:"smoothing_half_width"`
	MaxValleySectors   int     `yaml:"max_valley_sectors"`
	ObstacleSlope      float64 `yaml:"obstacle_slope"`

	// StatsWindow sizes the rolling window of per-tick commanded speed
	// samples averaged into one telemetry.WindowStats summary. A zero or
	// omitted value takes the defaults table's window; a negative value
	// disables windowed speed statistics entirely.
	StatsWindow int `yaml:"stats_window"`
}

// AgentConfig is a single entry in the `agents:` list.
type AgentConfig struct {
	Name  string  `yaml:"name"`
	Type  string  `yaml:"type"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Theta float64 `yaml:"theta"`

	Shape   string  `yaml:"shape"`
	Radius  float64 `yaml:"radius"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Density float64 `yaml:"density"`

	Grid   GridConfig   `yaml:"grid"`
	Sensor SensorConfig `yaml:"sensor"`
	Goal   GoalConfig   `yaml:"goal"`

	ValleyThreshold float64   `yaml:"valley_threshold"`
	Speed           float64   `yaml:"speed"`
	VFH             VFHTuning `yaml:"vfh"`

	// LoggingSet is a pointer so an omitted key can default to true
	// while an explicit "logging: false" is still distinguishable from
	// "not specified".
	LoggingSet *bool `yaml:"logging"`

	Waypoint      WaypointConfig `yaml:"waypoint"`
	GoalTolerance float64        `yaml:"goal_tolerance"`
}

// Config is the top-level configuration document: a world block plus
// zero or more agents.
type Config struct {
	World  WorldConfig   `yaml:"world"`
	Agents []AgentConfig `yaml:"agents"`

	// AgentDefaults is not part of the public document shape; it is
	// populated from the embedded defaults table and applied to every
	// agent entry field-by-field so per-agent documents only need to
	// name what differs from the default.
	AgentDefaults AgentConfig `yaml:"agent_defaults"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path. Must be called before
// Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load reads a YAML document at path, merged over the embedded defaults
// table, and applies the agent defaults to every agent entry. It does not
// validate the entries; ValidAgents does that, collecting per-agent
// failures without dropping the other agents.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	for i := range cfg.Agents {
		cfg.Agents[i].applyDefaults(cfg.AgentDefaults)
	}

	return cfg, nil
}

// applyDefaults fills the zero-valued defaultable fields of a (type,
// shape, density, speed, grid, sensor, valley threshold, goal tolerance,
// VFH tuning and logging) with the matching field from def, leaving
// explicitly-set fields untouched. Name, pose, geometry, goal and
// waypoint are never filled.
func (a *AgentConfig) applyDefaults(def AgentConfig) {
	if a.Type == "" {
		a.Type = def.Type
	}
	if a.Shape == "" {
		a.Shape = def.Shape
	}
	if a.Density == 0 {
		a.Density = def.Density
	}
	if a.Speed == 0 {
		a.Speed = def.Speed
	}
	if a.Grid.Width == 0 {
		a.Grid.Width = def.Grid.Width
	}
	if a.Sensor.Count == 0 {
		a.Sensor.Count = def.Sensor.Count
	}
	if a.Sensor.Range == 0 {
		a.Sensor.Range = def.Sensor.Range
	}
	if a.ValleyThreshold == 0 {
		a.ValleyThreshold = def.ValleyThreshold
	}
	if a.GoalTolerance == 0 {
		a.GoalTolerance = def.GoalTolerance
	}
	if a.VFH.WindowSize == 0 {
		a.VFH.WindowSize = def.VFH.WindowSize
	}
	if a.VFH.AlphaDeg == 0 {
		a.VFH.AlphaDeg = def.VFH.AlphaDeg
	}
	if a.VFH.SmoothingHalfWidth == 0 {
		a.VFH.SmoothingHalfWidth = def.VFH.SmoothingHalfWidth
	}
	if a.VFH.MaxValleySectors == 0 {
		a.VFH.MaxValleySectors = def.VFH.MaxValleySectors
	}
	if a.VFH.ObstacleSlope == 0 {
		a.VFH.ObstacleSlope = def.VFH.ObstacleSlope
	}
	if a.VFH.StatsWindow == 0 {
		a.VFH.StatsWindow = def.VFH.StatsWindow
	}
	if a.LoggingSet == nil {
		a.LoggingSet = def.LoggingSet
	}
}

// Logging reports whether the telemetry archive is enabled for this
// agent, defaulting to true when the document doesn't say either way.
func (a AgentConfig) Logging() bool {
	if a.LoggingSet == nil {
		return true
	}
	return *a.LoggingSet
}

// ValidAgents returns the subset of cfg.Agents that pass Validate,
// logging (via the returned errs slice, one per skipped agent) any that
// don't rather than aborting the whole document.
func (c *Config) ValidAgents() (valid []AgentConfig, errs []error) {
	for _, a := range c.Agents {
		if err := a.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, a)
	}
	return valid, errs
}

// Validate checks what applyDefaults cannot fill in: an unrecognized
// shape or agent type.
func (a AgentConfig) Validate() error {
	switch a.Type {
	case "vfh", "patrol":
	default:
		return fieldError(a.Name, "type", fmt.Sprintf("unknown agent type %q, want \"vfh\" or \"patrol\"", a.Type))
	}
	switch a.Shape {
	case "circle", "box":
	default:
		return fieldError(a.Name, "shape", fmt.Sprintf("unknown shape %q, want \"circle\" or \"box\"", a.Shape))
	}
	return nil
}
