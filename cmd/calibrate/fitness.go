package main

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/swell/config"
	"github.com/pthm-cable/swell/game"
	"github.com/pthm-cable/swell/telemetry"
)

// Target is the sea state the calibration aims for.
type Target struct {
	Hs           float64 // significant wave height (m)
	FoamCoverage float64 // fraction of cells carrying foam
	FoamWeight   float64 // weight of the foam term against the Hs term
}

// FitnessEvaluator runs headless simulations and scores them against a target.
type FitnessEvaluator struct {
	params     *ParamVector
	frames     int
	seeds      []uint64
	baseConfig *config.Config
	target     Target

	mu       sync.Mutex
	lastHs   float64
	lastFoam float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, frames int, seeds []uint64, baseCfg *config.Config, target Target) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		frames:     frames,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// Last returns the sea state measured by the most recent evaluation.
func (fe *FitnessEvaluator) Last() (hs, foam float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastHs, fe.lastFoam
}

// seaState is the mean over all windows of one run.
type seaState struct {
	hs, foam float64
	err      error
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seaState, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = fe.run(x, seed)
		}()
	}
	wg.Wait()

	var hs, foam float64
	for _, r := range results {
		if r.err != nil {
			slog.Warn("evaluation failed", "error", r.err)
			return math.Inf(1)
		}
		hs += r.hs
		foam += r.foam
	}
	n := float64(len(results))
	hs /= n
	foam /= n

	fe.mu.Lock()
	fe.lastHs, fe.lastFoam = hs, foam
	fe.mu.Unlock()

	return fe.target.score(hs, foam)
}

// score is the squared relative Hs error plus the weighted foam error.
func (t Target) score(hs, foam float64) float64 {
	dh := (hs - t.Hs) / t.Hs
	df := foam - t.FoamCoverage
	return dh*dh + t.FoamWeight*df*df
}

// run simulates one seed for the configured number of frames.
func (fe *FitnessEvaluator) run(x []float64, seed uint64) seaState {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(game.Options{
		Config:   cfg,
		Seed:     seed,
		Headless: true,
		Workers:  1,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	if err != nil {
		return seaState{err: err}
	}
	defer g.Unload()

	for int(g.Frame()) < fe.frames {
		if err := g.UpdateHeadless(); err != nil {
			return seaState{err: err}
		}
	}
	if len(windows) == 0 {
		return seaState{err: fmt.Errorf("no stats window within %d frames", fe.frames)}
	}

	var s seaState
	for _, w := range windows {
		s.hs += w.MeanHs
		s.foam += w.MeanFoamCoverage
	}
	s.hs /= float64(len(windows))
	s.foam /= float64(len(windows))
	return s
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
