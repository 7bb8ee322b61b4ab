package ocean

import (
	"math"
	"sync/atomic"

	"github.com/pthm-cable/swell/grid"
)

// SpectrumParams holds the inputs of the Phillips spectrum builder.
type SpectrumParams struct {
	Wind           [2]float64 // wind velocity; direction and speed
	PhillipsFactor float64    // amplitude constant A
	PatchLength    float64    // physical patch edge L
	Gravity        float64
	MinWavenumber  float64 // |k| below this gets zero energy
	DampingLength  float64 // l in exp(-k²l²); keep well below the cell size

	// SuppressAgainstWind zeroes bins with k̂·ŵ <= 0. The squared cosine
	// otherwise admits waves travelling both with and against the wind.
	SuppressAgainstWind bool
}

// InitialSpectrum is the time-invariant basis of every frame.
type InitialSpectrum struct {
	H0       *grid.Complex // initial amplitudes h0(k)
	Phillips *grid.Real    // P(k) per bin, kept for inspection
	Clamped  int           // bins whose P(k) was non-finite or negative
}

func (p SpectrumParams) validate() error {
	if !(p.PatchLength > 0) {
		return configErr("patch_length", "must be positive, got %v", p.PatchLength)
	}
	if !(math.Hypot(p.Wind[0], p.Wind[1]) > 0) {
		return configErr("wind", "speed must be positive to define a direction, got %v", p.Wind)
	}
	if !(p.Gravity > 0) {
		return configErr("gravity", "must be positive, got %v", p.Gravity)
	}
	return nil
}

// phillipsKernel evaluates P(k) with the wind terms precomputed.
type phillipsKernel struct {
	SpectrumParams
	windDir  [2]float64
	windLen  float64 // largest wave from continuous wind, V²/g
	damping2 float64 // l²
}

func newPhillipsKernel(p SpectrumParams) phillipsKernel {
	speed := math.Hypot(p.Wind[0], p.Wind[1])
	return phillipsKernel{
		SpectrumParams: p,
		windDir:        [2]float64{p.Wind[0] / speed, p.Wind[1] / speed},
		windLen:        speed * speed / p.Gravity,
		damping2:       p.DampingLength * p.DampingLength,
	}
}

// eval returns P(k) for wave vector (kx, kz), clamped to a finite
// non-negative value, and whether a clamp was needed.
func (pk *phillipsKernel) eval(kx, kz float64) (float64, bool) {
	k := math.Hypot(kx, kz)
	if k < pk.MinWavenumber || k == 0 {
		return 0, false
	}

	cos := (kx*pk.windDir[0] + kz*pk.windDir[1]) / k
	if pk.SuppressAgainstWind && cos <= 0 {
		return 0, false
	}

	k2 := k * k
	kL := k * pk.windLen
	v := pk.PhillipsFactor * math.Exp(-1/(kL*kL)) / (k2 * k2) * cos * cos
	v *= math.Exp(-k2 * pk.damping2)
	return finiteOr0(v)
}

// Phillips returns the Phillips spectrum value for wave vector (kx, kz).
func Phillips(kx, kz float64, p SpectrumParams) float64 {
	pk := newPhillipsKernel(p)
	v, _ := pk.eval(kx, kz)
	return v
}

// BuildInitialSpectrum shapes the Gaussian field with the Phillips spectrum:
// h0(k) = (ξr + iξi)·√(P(k)/2). The DC bin is always zero. The result depends
// only on the inputs.
func BuildInitialSpectrum(gauss *grid.Complex, p SpectrumParams) (*InitialSpectrum, error) {
	return buildInitialSpectrum(nil, gauss, p)
}

func buildInitialSpectrum(pool *workerPool, gauss *grid.Complex, p SpectrumParams) (*InitialSpectrum, error) {
	if gauss == nil {
		return nil, configErr("gaussian", "field is nil")
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	n := gauss.N
	h0, err := grid.NewComplex(n)
	if err != nil {
		return nil, configErr("fft_size", "%v", err)
	}
	phillips, _ := grid.NewReal(n)

	pk := newPhillipsKernel(p)
	dcx, dcz := grid.DC(n)
	dc := h0.Index(dcx, dcz)
	var clamped atomic.Int64

	pool.run(n*n, func(start, end int) {
		local := 0
		for i := start; i < end; i++ {
			if i == dc {
				continue
			}
			x, z := i%n, i/n
			kx, kz := waveVector(x, z, n, p.PatchLength)
			pv, c := pk.eval(kx, kz)
			if c {
				local++
			}
			phillips.Data[i] = pv
			amp := math.Sqrt(pv) / math.Sqrt2
			h0.Data[i] = gauss.Data[i] * complex(amp, 0)
		}
		if local > 0 {
			clamped.Add(int64(local))
		}
	})

	return &InitialSpectrum{H0: h0, Phillips: phillips, Clamped: int(clamped.Load())}, nil
}
