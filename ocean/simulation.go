package ocean

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/swell/grid"
	"github.com/pthm-cable/swell/spectral"
)

// Phase names reported to a PhaseRecorder during Tick.
const (
	PhaseGenerate    = "generate"
	PhaseEvolve      = "evolve"
	PhaseTransform   = "transform"
	PhaseReconstruct = "reconstruct"
)

// PhaseRecorder receives phase boundaries while a frame is computed.
// telemetry.PerfCollector implements it.
type PhaseRecorder interface {
	StartPhase(name string)
}

// Frame is the output of one Tick. Its grids are owned by the Simulation and
// stay valid until the next Tick, Reconfigure or Close.
type Frame struct {
	Index   uint64
	Time    float64 // scaled simulation time the frame was evolved to
	Spectra *Spectra
	Fields  *Fields
	Maps    *Maps
	Clamped int // Phillips bins clamped when the initial spectrum was built
}

// Simulation owns every grid of the pipeline. It is driven by one caller;
// parallelism happens inside each stage.
type Simulation struct {
	params Params
	pool   *workerPool
	perf   PhaseRecorder

	// Cached per configuration. generated gates the initial spectrum.
	gaussian  *grid.Complex
	initial   *InitialSpectrum
	generated bool

	// Per-frame buffers, reused
	transforms [numChannels]*spectral.Transform
	spectra    *Spectra
	work       *Spectra
	fields     *Fields
	maps       *Maps

	frames uint64
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithWorkers sets the size of the per-cell worker pool.
// 1 runs every kernel on the calling goroutine.
func WithWorkers(n int) Option {
	return func(s *Simulation) { s.pool = newWorkerPool(n) }
}

// WithPhaseRecorder reports stage timings to r.
func WithPhaseRecorder(r PhaseRecorder) Option {
	return func(s *Simulation) { s.perf = r }
}

// NewSimulation validates p and allocates the pipeline. The Gaussian field
// and initial spectrum are generated lazily on the first Tick.
func NewSimulation(p Params, opts ...Option) (*Simulation, error) {
	s := &Simulation{}
	for _, opt := range opts {
		opt(s)
	}
	if s.pool == nil {
		s.pool = newWorkerPool(0)
	}
	if err := s.Reconfigure(p); err != nil {
		return nil, err
	}
	return s, nil
}

// Params returns the active parameters.
func (s *Simulation) Params() Params { return s.params }

// Generated reports whether the initial spectrum is cached.
func (s *Simulation) Generated() bool { return s.generated }

// Frames returns the number of completed ticks.
func (s *Simulation) Frames() uint64 { return s.frames }

// Reconfigure applies new parameters. Cached grids survive only when the
// spectrum inputs are unchanged; buffers are reallocated on a size change.
// On error the previous configuration stays active.
func (s *Simulation) Reconfigure(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	old := s.params
	if s.spectra == nil || p.Size != old.Size {
		if err := s.allocate(p.Size); err != nil {
			return err
		}
		s.Invalidate()
	} else if !p.sameSpectrum(old) {
		if p.Seed != old.Seed {
			s.gaussian = nil
		}
		s.initial = nil
		s.generated = false
	}

	s.params = p
	slog.Debug("ocean reconfigured", "n", p.Size, "patch_length", p.PatchLength(), "wind", p.Wind, "regenerate", !s.generated)
	return nil
}

// Invalidate drops the cached Gaussian field and initial spectrum; the next
// Tick regenerates them.
func (s *Simulation) Invalidate() {
	s.gaussian = nil
	s.initial = nil
	s.generated = false
}

func (s *Simulation) allocate(n int) error {
	var err error
	var transforms [numChannels]*spectral.Transform
	for c := range transforms {
		if transforms[c], err = spectral.New(n); err != nil {
			return configErr("fft_size", "%v", err)
		}
	}
	spectra, err := NewSpectra(n)
	if err != nil {
		return err
	}
	work, err := NewSpectra(n)
	if err != nil {
		return err
	}
	fields, err := NewFields(n)
	if err != nil {
		return err
	}

	s.transforms = transforms
	s.spectra = spectra
	s.work = work
	s.fields = fields
	s.maps = NewMaps(n)
	return nil
}

// InitialSpectrum returns the cached initial spectrum, generating it first
// if needed.
func (s *Simulation) InitialSpectrum() (*InitialSpectrum, error) {
	if s.generated {
		return s.initial, nil
	}

	start := time.Now()
	if s.gaussian == nil {
		g, err := GenerateGaussian(s.params.Size, s.params.Seed)
		if err != nil {
			return nil, err
		}
		s.gaussian = g
	}

	initial, err := buildInitialSpectrum(s.pool, s.gaussian, s.params.spectrum())
	if err != nil {
		return nil, err
	}
	s.initial = initial
	s.generated = true

	slog.Info("initial spectrum generated",
		"n", s.params.Size,
		"seed", s.params.Seed,
		"patch_length", s.params.PatchLength(),
		"wind_speed", s.params.WindSpeed(),
		"clamped", initial.Clamped,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return initial, nil
}

// Phillips returns the cached P(k) grid, or nil before generation.
func (s *Simulation) Phillips() *grid.Real {
	if !s.generated {
		return nil
	}
	return s.initial.Phillips
}

// Tick computes the frame for caller time t (seconds). The time scale is
// applied here. A cancelled context abandons the frame between stages.
func (s *Simulation) Tick(ctx context.Context, t float64) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !s.generated {
		s.phase(PhaseGenerate)
	}
	initial, err := s.InitialSpectrum()
	if err != nil {
		return nil, err
	}

	st := t * s.params.TimeScale

	s.phase(PhaseEvolve)
	evolveInto(s.pool, s.spectra, initial.H0, s.params.evolve(), st)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.phase(PhaseTransform)
	if err := s.transform(ctx); err != nil {
		return nil, err
	}

	s.phase(PhaseReconstruct)
	reconstructInto(s.pool, s.maps, s.fields, s.params.surface())

	s.frames++
	return &Frame{
		Index:   s.frames,
		Time:    st,
		Spectra: s.spectra,
		Fields:  s.fields,
		Maps:    s.maps,
		Clamped: initial.Clamped,
	}, nil
}

// transform runs the five inverse FFTs concurrently. The evolved spectra are
// copied first so they remain readable after the in-place transforms.
func (s *Simulation) transform(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for c := Channel(0); c < numChannels; c++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			work := s.work.Channel(c)
			copy(work.Data, s.spectra.Channel(c).Data)
			res, err := s.transforms[c].Inverse2D(s.fields.Channel(c), work)
			if err != nil {
				return fmt.Errorf("inverse %s: %w", c, err)
			}
			s.fields.Residue[c] = res
			return nil
		})
	}
	return g.Wait()
}

func (s *Simulation) phase(name string) {
	if s.perf != nil {
		s.perf.StartPhase(name)
	}
}

// Close stops the worker pool. It must not be called concurrently with Tick.
func (s *Simulation) Close() {
	s.pool.stopWorkers()
}
