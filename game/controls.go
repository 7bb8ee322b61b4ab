package game

import (
	"log/slog"
	"math"
)

// maxStepsPerUpdate bounds the speed-up of the interactive clock.
const maxStepsPerUpdate = 10

// RotateWind turns the wind by angle radians, keeping its speed. The initial
// spectrum is regenerated on the next frame.
func (g *Game) RotateWind(angle float64) {
	p := g.params
	sin, cos := math.Sincos(angle)
	p.Wind = [2]float64{
		p.Wind[0]*cos - p.Wind[1]*sin,
		p.Wind[0]*sin + p.Wind[1]*cos,
	}
	if err := g.Reconfigure(p); err != nil {
		slog.Error("failed to rotate wind", "error", err)
		return
	}
	slog.Info("wind changed", "wind", p.Wind)
}

// Reseed draws a new Gaussian field.
func (g *Game) Reseed(seed uint64) {
	p := g.params
	p.Seed = seed
	if err := g.Reconfigure(p); err != nil {
		slog.Error("failed to reseed", "error", err)
		return
	}
	slog.Info("reseeded", "seed", seed)
}

// TogglePause stops or resumes Update.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// Paused reports whether Update is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// AdjustSpeed changes the simulation steps per update by delta, within
// [1, maxStepsPerUpdate].
func (g *Game) AdjustSpeed(delta int) {
	g.stepsPerUpdate = min(max(g.stepsPerUpdate+delta, 1), maxStepsPerUpdate)
}

// StepsPerUpdate returns the current speed multiplier.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}
