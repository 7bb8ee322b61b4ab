// Package game drives an ocean simulation frame by frame and feeds its
// telemetry. Rendering lives in the renderer package.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/swell/config"
	"github.com/pthm-cable/swell/mesh"
	"github.com/pthm-cable/swell/ocean"
	"github.com/pthm-cable/swell/telemetry"
)

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           uint64         // 0 = config seed, or time-based if that is 0 too
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	Workers        int // 0 = GOMAXPROCS

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the simulation and everything observing it.
type Game struct {
	cfg    *config.Config
	params ocean.Params
	sim    *ocean.Simulation
	grid   *mesh.Grid
	ctx    context.Context

	// Telemetry
	perfCollector *telemetry.PerfCollector
	meter         telemetry.Meter
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// State
	frame          *ocean.Frame
	last           telemetry.FrameStats
	simTime        float64
	dt             float64
	paused         bool
	stepsPerUpdate int
}

// NewGameWithOptions builds the simulation described by the configuration.
// Outside headless mode the FFT size is taken from the preview section.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	p := ocean.ParamsFromConfig(cfg)
	if opts.Seed != 0 {
		p.Seed = opts.Seed
	}
	if p.Seed == 0 {
		p.Seed = uint64(time.Now().UnixNano())
	}
	if !opts.Headless && cfg.Preview.FFTSize > 0 {
		p.Size = cfg.Preview.FFTSize
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	perf.SetCells(p.Size * p.Size)
	sim, err := ocean.NewSimulation(p,
		ocean.WithWorkers(opts.Workers),
		ocean.WithPhaseRecorder(perf),
	)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	gx, gy, scale := meshLayout(cfg, p, opts.Headless)
	grid, err := mesh.BuildGrid(gx, gy, scale)
	if err != nil {
		sim.Close()
		return nil, fmt.Errorf("building mesh: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		sim.Close()
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		params:         p,
		sim:            sim,
		grid:           grid,
		ctx:            context.Background(),
		perfCollector:  perf,
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsInterval),
		outputManager:  om,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		dt:             cfg.Simulation.DT,
		stepsPerUpdate: steps,
	}

	slog.Info("ocean created",
		"n", p.Size,
		"seed", p.Seed,
		"patch_length", p.PatchLength(),
		"wind", p.Wind,
		"mesh", fmt.Sprintf("%dx%d", gx, gy),
		"grid_bytes", p.GridBytes(),
	)
	return g, nil
}

// meshLayout picks the render grid. The preview draws a wireframe, so its
// grid is capped at the FFT size and stretched over one patch.
func meshLayout(cfg *config.Config, p ocean.Params, headless bool) (gx, gy int, scale float32) {
	gx, gy = cfg.Mesh.GridX, cfg.Mesh.GridY
	scale = float32(cfg.Mesh.GridScale)
	if headless {
		return gx, gy, scale
	}
	gx, gy = min(gx, p.Size), min(gy, p.Size)
	return gx, gy, float32(p.PatchLength()) / float32(gx)
}

// WithContext makes every subsequent Tick observe ctx.
func (g *Game) WithContext(ctx context.Context) {
	g.ctx = ctx
}

// UpdateHeadless advances the simulation without input or rendering.
func (g *Game) UpdateHeadless() error {
	for i := 0; i < g.stepsPerUpdate; i++ {
		if err := g.step(g.dt); err != nil {
			return err
		}
	}
	return nil
}

// Update advances the simulation by the frame time unless paused.
func (g *Game) Update(frameTime float64) error {
	if g.paused {
		return nil
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		if err := g.step(frameTime); err != nil {
			return err
		}
	}
	return nil
}

// step computes one frame dt seconds after the previous one.
func (g *Game) step(dt float64) error {
	g.perfCollector.StartTick()

	frame, err := g.sim.Tick(g.ctx, g.simTime)
	if err != nil {
		g.perfCollector.AbortTick()
		return fmt.Errorf("frame %d: %w", g.sim.Frames()+1, err)
	}
	g.frame = frame
	g.simTime += dt

	g.perfCollector.StartPhase(telemetry.PhaseMeasure)
	g.recordFrame()

	g.perfCollector.EndTick()

	g.flushTelemetry()
	return nil
}

// Reconfigure swaps the simulation parameters, keeping the clock.
func (g *Game) Reconfigure(p ocean.Params) error {
	if err := g.sim.Reconfigure(p); err != nil {
		return err
	}
	g.params = p
	g.perfCollector.SetCells(p.Size * p.Size)
	return nil
}

// Frame returns the number of frames computed so far.
func (g *Game) Frame() uint64 {
	return g.sim.Frames()
}

// SimTime returns the caller-side clock of the next frame.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Current returns the latest frame, or nil before the first update.
func (g *Game) Current() *ocean.Frame {
	return g.frame
}

// LastStats returns the measurements of the latest frame.
func (g *Game) LastStats() telemetry.FrameStats {
	return g.last
}

// Params returns the active simulation parameters.
func (g *Game) Params() ocean.Params {
	return g.params
}

// Grid returns the render grid.
func (g *Game) Grid() *mesh.Grid {
	return g.grid
}

// Perf returns the frame timing collector.
func (g *Game) Perf() *telemetry.PerfCollector {
	return g.perfCollector
}

// OutputDir returns the run output directory, or "" when output is disabled.
func (g *Game) OutputDir() string {
	return g.outputManager.Dir()
}

// Unload stops workers and closes output files.
func (g *Game) Unload() {
	g.sim.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
