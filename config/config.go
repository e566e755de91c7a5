// Package config provides configuration loading and access for the viewer and
// the headless runner.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Spiral    SpiralConfig    `yaml:"spiral"`
	VShape    VShapeConfig    `yaml:"vshape"`
	Displace  DisplaceConfig  `yaml:"displace"`
	Noise     NoiseConfig     `yaml:"noise"`
	Image     ImageConfig     `yaml:"image"`
	Grid      GridConfig      `yaml:"grid"`
	Voronoi   VoronoiConfig   `yaml:"voronoi"`
	Animation AnimationConfig `yaml:"animation"`
	Camera    CameraConfig    `yaml:"camera"`
	Sequence  SequenceConfig  `yaml:"sequence"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window parameters.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// FieldConfig holds the point count and base seed.
type FieldConfig struct {
	Points    int        `yaml:"points"`
	Seed      uint64     `yaml:"seed"` // 0 = derive from time
	BaseColor [3]float64 `yaml:"base_color"`
}

// SpiralConfig holds Archimedean spiral parameters.
type SpiralConfig struct {
	StartRadius float64 `yaml:"start_radius"`
	WindRate    float64 `yaml:"wind_rate"`
	ZFactor     float64 `yaml:"z_factor"`
	Turns       float64 `yaml:"turns"` // total angle in radians
}

// VShapeConfig holds V-shape apexes and jitter.
type VShapeConfig struct {
	TopLeft     [3]float64 `yaml:"top_left"`
	TopRight    [3]float64 `yaml:"top_right"`
	Bottom      [3]float64 `yaml:"bottom"`
	LeftJitter  [2]float64 `yaml:"left_jitter"`  // min, max
	RightJitter [2]float64 `yaml:"right_jitter"` // min, max
	SnapEvery   int        `yaml:"snap_every"`
}

// DisplaceConfig holds noise displacement parameters.
type DisplaceConfig struct {
	Intensity float64 `yaml:"intensity"`
}

// NoiseConfig holds the coherent noise field used by displacement.
type NoiseConfig struct {
	Kind       string  `yaml:"kind"` // perlin, simplex, value
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Scale      float64 `yaml:"scale"`
	Octaves    int     `yaml:"octaves"`
	Lacunarity float64 `yaml:"lacunarity"`
	Gain       float64 `yaml:"gain"`
}

// ImageConfig holds image pattern parameters.
type ImageConfig struct {
	Path     string  `yaml:"path"`
	Columns  int     `yaml:"columns"` // 0 = fit to field.points
	Rows     int     `yaml:"rows"`
	MinScale float64 `yaml:"min_scale"`
	MaxScale float64 `yaml:"max_scale"`
}

// GridConfig holds the resting grid layout.
type GridConfig struct {
	Columns   int     `yaml:"columns"` // 0 = square-ish
	PixelSize float64 `yaml:"pixel_size"`
}

// VoronoiConfig controls ripple ordering of color tweens.
type VoronoiConfig struct {
	Ripple    bool    `yaml:"ripple"`
	Width     float64 `yaml:"width"`  // 0 = fit to the points
	Height    float64 `yaml:"height"` // 0 = fit to the points
	MaxPoints int     `yaml:"max_points"`
}

// TweenConfig holds one channel's tween timing.
type TweenConfig struct {
	Duration float64 `yaml:"duration"`
	Stagger  float64 `yaml:"stagger"`
	Ease     string  `yaml:"ease"`
}

// AnimationConfig holds per-channel tween timings.
type AnimationConfig struct {
	Position TweenConfig `yaml:"position"`
	Scale    TweenConfig `yaml:"scale"`
	Color    TweenConfig `yaml:"color"`
	Displace TweenConfig `yaml:"displace"` // position timing for noise displacement
	Trail    float64     `yaml:"trail"`    // 0 = off, toward 1 = longer trails
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance        float64 `yaml:"distance"`
	FovY            float64 `yaml:"fov_y"`
	SpringFrequency float64 `yaml:"spring_frequency"` // 0 = no smoothing
	SpringDamping   float64 `yaml:"spring_damping"`   // 1 = critically damped
}

// SequenceConfig holds the automatic pattern cycle.
type SequenceConfig struct {
	Patterns []string `yaml:"patterns"`
	Hold     float64  `yaml:"hold"` // seconds to rest after a transition
}

// TelemetryConfig holds output parameters.
type TelemetryConfig struct {
	Snapshots      bool `yaml:"snapshots"`       // write per-point CSV for every generation
	LogGenerations bool `yaml:"log_generations"` // slog each generation
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32   float32 // Screen.Width as float32
	ScreenH32   float32 // Screen.Height as float32
	GridColumns int     // Grid.Columns or ceil(sqrt(points))
	GridRows    int     // rows needed for Field.Points
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks values the generators cannot recover from.
func (c *Config) Validate() error {
	if c.Field.Points <= 0 {
		return fmt.Errorf("config: field.points must be positive, got %d", c.Field.Points)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("config: screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Grid.Columns < 0 || c.Grid.PixelSize <= 0 {
		return fmt.Errorf("config: grid needs columns >= 0 and pixel_size > 0")
	}
	if c.Animation.Trail < 0 || c.Animation.Trail >= 1 {
		return fmt.Errorf("config: animation.trail must be in [0, 1), got %g", c.Animation.Trail)
	}
	if len(c.Sequence.Patterns) == 0 {
		return fmt.Errorf("config: sequence.patterns must not be empty")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	cols := c.Grid.Columns
	if cols == 0 {
		cols = int(math.Ceil(math.Sqrt(float64(c.Field.Points))))
	}
	c.Derived.GridColumns = cols
	c.Derived.GridRows = (c.Field.Points + cols - 1) / cols

	for i, p := range c.Sequence.Patterns {
		c.Sequence.Patterns[i] = strings.ToLower(strings.TrimSpace(p))
	}
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
