// Package config provides configuration loading and access for the ocean simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Ocean      OceanConfig      `yaml:"ocean"`
	Spectrum   SpectrumConfig   `yaml:"spectrum"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Simulation SimulationConfig `yaml:"simulation"`
	Mesh       MeshConfig       `yaml:"mesh"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Limits     LimitsConfig     `yaml:"limits"`
	Preview    PreviewConfig    `yaml:"preview"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Vec2 is a 2D vector in the horizontal (x, z) plane.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// OceanConfig holds the parameters that define one ocean patch.
// Changing any of these regenerates the initial spectrum.
type OceanConfig struct {
	FFTSize        int     `yaml:"fft_size"`        // Grid edge N, power of two
	PatchScale     float64 `yaml:"patch_scale"`     // World units per grid cell; patch length = fft_size * patch_scale
	Wind           Vec2    `yaml:"wind"`            // Wind velocity (m/s); direction and speed
	PhillipsFactor float64 `yaml:"phillips_factor"` // Phillips amplitude constant A
	Seed           uint64  `yaml:"seed"`            // Gaussian field seed (0 = time-based in the runner)
}

// SpectrumConfig holds tuning values for the Phillips spectrum.
type SpectrumConfig struct {
	Gravity             float64 `yaml:"gravity"`
	MinWavenumber       float64 `yaml:"min_wavenumber"`        // |k| below this is treated as zero
	DampingFraction     float64 `yaml:"damping_fraction"`      // Small-wave cutoff length as a fraction of patch_scale
	SuppressAgainstWind bool    `yaml:"suppress_against_wind"` // Zero waves travelling against the wind
}

// SurfaceConfig holds reconstruction scale factors.
type SurfaceConfig struct {
	HeightScale     float64 `yaml:"height_scale"`
	XZFactor        float64 `yaml:"xz_factor"`        // Horizontal displacement (choppiness) scale
	BubbleScale     float64 `yaml:"bubble_scale"`     // Foam gain
	BubbleThreshold float64 `yaml:"bubble_threshold"` // Foam appears where Jx*Jz drops below this
}

// SimulationConfig holds time stepping parameters.
type SimulationConfig struct {
	TimeScale float64 `yaml:"time_scale"`
	DT        float64 `yaml:"dt"` // Fixed step used by the headless runner
}

// MeshConfig holds the planar render grid parameters.
type MeshConfig struct {
	GridX     int     `yaml:"grid_x"`
	GridY     int     `yaml:"grid_y"`
	GridScale float64 `yaml:"grid_scale"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsInterval       int `yaml:"stats_interval"`        // Frames between stats records
	PerfCollectorWindow int `yaml:"perf_collector_window"` // Frames averaged by the perf collector
}

// LimitsConfig holds resource limits checked at setup.
type LimitsConfig struct {
	MaxGridBytes int64 `yaml:"max_grid_bytes"` // 0 = unlimited
}

// PreviewConfig holds settings for the interactive preview tool.
type PreviewConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	FFTSize   int `yaml:"fft_size"` // Preview runs a smaller patch than the headless default
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PatchLength   float64 // FFTSize * PatchScale
	CellSize      float64 // PatchScale
	DampingLength float64 // DampingFraction * PatchScale
	WindSpeed     float64 // |Wind|
	DT32          float32 // Simulation.DT as float32
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// Parse is like Load but reads the overlay from memory.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Recompute refreshes Derived after fields were changed in code.
func (c *Config) Recompute() {
	c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.PatchLength = float64(c.Ocean.FFTSize) * c.Ocean.PatchScale
	c.Derived.CellSize = c.Ocean.PatchScale
	c.Derived.DampingLength = c.Spectrum.DampingFraction * c.Ocean.PatchScale
	c.Derived.WindSpeed = math.Hypot(c.Ocean.Wind.X, c.Ocean.Wind.Y)
	c.Derived.DT32 = float32(c.Simulation.DT)

	// Mesh defaults to half the FFT resolution, as in the classic setup
	if c.Mesh.GridX == 0 {
		c.Mesh.GridX = c.Ocean.FFTSize / 2
	}
	if c.Mesh.GridY == 0 {
		c.Mesh.GridY = c.Mesh.GridX
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
