package ocean

import (
	"fmt"
	"math"

	"github.com/pthm-cable/swell/config"
	"github.com/pthm-cable/swell/grid"
)

// maxFFTSize bounds N before the byte estimate can overflow.
const maxFFTSize = 1 << 15

// Per-cell storage held by a Simulation: gaussian, h0, five spectra and five
// transform buffers (complex128), the Phillips grid and five fields
// (float64), and the two output maps (mgl32.Vec3 + mgl32.Vec4).
const bytesPerCell = 12*16 + 6*8 + 12 + 16

// Params is the full parameter set of a Simulation.
type Params struct {
	Size                int
	PatchScale          float64
	Wind                [2]float64
	PhillipsFactor      float64
	Seed                uint64
	Gravity             float64
	MinWavenumber       float64
	DampingFraction     float64
	SuppressAgainstWind bool

	HeightScale     float64
	XZFactor        float64
	BubbleScale     float64
	BubbleThreshold float64

	TimeScale    float64
	MaxGridBytes int64 // 0 = unlimited
}

// ParamsFromConfig maps a loaded configuration onto simulation parameters.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Size:                cfg.Ocean.FFTSize,
		PatchScale:          cfg.Ocean.PatchScale,
		Wind:                [2]float64{cfg.Ocean.Wind.X, cfg.Ocean.Wind.Y},
		PhillipsFactor:      cfg.Ocean.PhillipsFactor,
		Seed:                cfg.Ocean.Seed,
		Gravity:             cfg.Spectrum.Gravity,
		MinWavenumber:       cfg.Spectrum.MinWavenumber,
		DampingFraction:     cfg.Spectrum.DampingFraction,
		SuppressAgainstWind: cfg.Spectrum.SuppressAgainstWind,
		HeightScale:         cfg.Surface.HeightScale,
		XZFactor:            cfg.Surface.XZFactor,
		BubbleScale:         cfg.Surface.BubbleScale,
		BubbleThreshold:     cfg.Surface.BubbleThreshold,
		TimeScale:           cfg.Simulation.TimeScale,
		MaxGridBytes:        cfg.Limits.MaxGridBytes,
	}
}

// PatchLength returns the physical edge length L of the simulated patch.
func (p Params) PatchLength() float64 {
	return float64(p.Size) * p.PatchScale
}

// WindSpeed returns |Wind|.
func (p Params) WindSpeed() float64 {
	return math.Hypot(p.Wind[0], p.Wind[1])
}

// GridBytes estimates the memory held by a Simulation of this size.
func (p Params) GridBytes() int64 {
	n := int64(p.Size)
	return n * n * bytesPerCell
}

// Validate checks the parameters and the resource budget.
func (p Params) Validate() error {
	if err := grid.CheckSize(p.Size); err != nil {
		return configErr("fft_size", "%v", err)
	}
	if !(p.PatchScale > 0) || math.IsInf(p.PatchScale, 0) {
		return configErr("patch_scale", "must be positive, got %v", p.PatchScale)
	}
	if !(p.WindSpeed() > 0) || math.IsInf(p.WindSpeed(), 0) {
		return configErr("wind", "speed must be positive to define a direction, got %v", p.Wind)
	}
	if !(p.Gravity > 0) {
		return configErr("gravity", "must be positive, got %v", p.Gravity)
	}
	if p.PhillipsFactor < 0 || math.IsNaN(p.PhillipsFactor) {
		return configErr("phillips_factor", "must be non-negative, got %v", p.PhillipsFactor)
	}
	if p.MinWavenumber < 0 || math.IsNaN(p.MinWavenumber) {
		return configErr("min_wavenumber", "must be non-negative, got %v", p.MinWavenumber)
	}
	if p.DampingFraction < 0 || math.IsNaN(p.DampingFraction) {
		return configErr("damping_fraction", "must be non-negative, got %v", p.DampingFraction)
	}
	if !finite(p.HeightScale) {
		return configErr("height_scale", "must be finite, got %v", p.HeightScale)
	}
	if !finite(p.XZFactor) {
		return configErr("xz_factor", "must be finite, got %v", p.XZFactor)
	}
	if p.BubbleScale < 0 || !finite(p.BubbleScale) {
		return configErr("bubble_scale", "must be finite and non-negative, got %v", p.BubbleScale)
	}
	if !finite(p.BubbleThreshold) {
		return configErr("bubble_threshold", "must be finite, got %v", p.BubbleThreshold)
	}
	if p.TimeScale < 0 || math.IsNaN(p.TimeScale) {
		return configErr("time_scale", "must be non-negative, got %v", p.TimeScale)
	}

	if p.Size > maxFFTSize {
		return fmt.Errorf("%w: fft_size %d above hard limit %d", ErrResourceExhausted, p.Size, maxFFTSize)
	}
	if p.MaxGridBytes > 0 && p.GridBytes() > p.MaxGridBytes {
		return fmt.Errorf("%w: fft_size %d needs %d bytes, budget is %d",
			ErrResourceExhausted, p.Size, p.GridBytes(), p.MaxGridBytes)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// spectrum returns the Phillips builder inputs.
func (p Params) spectrum() SpectrumParams {
	return SpectrumParams{
		Wind:                p.Wind,
		PhillipsFactor:      p.PhillipsFactor,
		PatchLength:         p.PatchLength(),
		Gravity:             p.Gravity,
		MinWavenumber:       p.MinWavenumber,
		DampingLength:       p.DampingFraction * p.PatchScale,
		SuppressAgainstWind: p.SuppressAgainstWind,
	}
}

func (p Params) evolve() EvolveParams {
	return EvolveParams{
		PatchLength:   p.PatchLength(),
		Gravity:       p.Gravity,
		MinWavenumber: p.MinWavenumber,
	}
}

func (p Params) surface() SurfaceParams {
	return SurfaceParams{
		HeightScale:     p.HeightScale,
		XZFactor:        p.XZFactor,
		BubbleScale:     p.BubbleScale,
		BubbleThreshold: p.BubbleThreshold,
		CellSize:        p.PatchScale,
	}
}

// sameSpectrum reports whether two parameter sets share an initial spectrum.
func (p Params) sameSpectrum(o Params) bool {
	return p.Size == o.Size && p.Seed == o.Seed && p.spectrum() == o.spectrum()
}
