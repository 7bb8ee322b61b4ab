package ocean

import "math"

// waveVector returns the wave vector of bin (x, z) in a centred spectrum of
// size n covering a patch of the given physical length.
func waveVector(x, z, n int, patchLength float64) (kx, kz float64) {
	scale := 2 * math.Pi / patchLength
	return float64(x-n/2) * scale, float64(z-n/2) * scale
}

// dispersion is the deep-water dispersion relation ω = √(g·k).
func dispersion(gravity, k float64) float64 {
	return math.Sqrt(gravity * k)
}

// finiteOr0 clamps NaN, infinities and negative rounding artifacts to zero.
// The second return reports whether a clamp happened.
func finiteOr0(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true
	}
	if v < 0 {
		return 0, true
	}
	return v, false
}
