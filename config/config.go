// Package config provides configuration loading and access for the
// visualization.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualization configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Particles ParticlesConfig `yaml:"particles"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds direction field parameters.
type FieldConfig struct {
	Mode       string  `yaml:"mode"`        // flow, galaxy, vortex, chaos
	NoiseScale float64 `yaml:"noise_scale"` // spatial frequency divisor
	Seed       int64   `yaml:"seed"`        // permutation seed (0 = derive from run seed)
}

// PointerConfig holds interactive pointer perturbation parameters.
type PointerConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
}

// ParticlesConfig holds particle population and kinematics parameters.
type ParticlesConfig struct {
	Count           int     `yaml:"count"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	MaxSpeed        float64 `yaml:"max_speed"`
	ForceGain       float64 `yaml:"force_gain"`
	EdgeMargin      float64 `yaml:"edge_margin"`
	BounceDamping   float64 `yaml:"bounce_damping"`
	SpawnInset      float64 `yaml:"spawn_inset"`
}

// RenderConfig holds trail rendering parameters.
type RenderConfig struct {
	FadeAlpha      float64 `yaml:"fade_alpha"`      // per-frame trail fade, 0-255
	TrailThickness float64 `yaml:"trail_thickness"` // line width in pixels
	Saturation     float64 `yaml:"saturation"`      // trail color saturation, 0-1
	Value          float64 `yaml:"value"`           // trail color value, 0-1
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields present
		// in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
