package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/swell/ocean"
)

// Phase names for one frame. The first four are reported by the simulation
// itself; measure covers surface statistics taken by the runner.
const (
	PhaseGenerate    = ocean.PhaseGenerate
	PhaseEvolve      = ocean.PhaseEvolve
	PhaseTransform   = ocean.PhaseTransform
	PhaseReconstruct = ocean.PhaseReconstruct
	PhaseMeasure     = "measure"
)

// FramePhases lists the timed phases of a frame in pipeline order.
var FramePhases = [...]string{
	PhaseGenerate, PhaseEvolve, PhaseTransform, PhaseReconstruct, PhaseMeasure,
}

const numPhases = len(FramePhases)

// noPhase marks time spent outside any known phase. It still counts toward
// the frame total.
const noPhase = -1

func phaseIndex(name string) int {
	for i, p := range FramePhases {
		if p == name {
			return i
		}
	}
	return noPhase
}

// frameSample holds timing data for a single frame.
type frameSample struct {
	total     time.Duration
	phases    [numPhases]time.Duration
	generated bool // the initial spectrum was rebuilt in this frame
}

// PerfCollector tracks frame timings over a rolling window. It implements
// ocean.PhaseRecorder, so the simulation marks its own stages.
type PerfCollector struct {
	now func() time.Time

	window  []frameSample
	next    int
	filled  int
	cells   int
	current frameSample
	inTick  bool

	tickStart  time.Time
	phaseStart time.Time
	phase      int

	// Preview frame timing, independent of simulation ticks
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	return newPerfCollector(windowSize, time.Now)
}

func newPerfCollector(windowSize int, now func() time.Time) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:    now,
		window: make([]frameSample, windowSize),
		phase:  noPhase,
	}
}

// SetCells sets the number of grid cells per frame, used for the per-cell
// cost. Zero disables it.
func (p *PerfCollector) SetCells(n int) {
	p.cells = n
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	now := p.now()
	p.tickStart = now
	p.phaseStart = now
	p.current = frameSample{}
	p.phase = noPhase
	p.inTick = true
}

// StartPhase closes the running phase and starts timing the named one.
// Names outside FramePhases are timed only as part of the frame total.
func (p *PerfCollector) StartPhase(name string) {
	if !p.inTick {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.phase = phaseIndex(name)
	if name == PhaseGenerate {
		p.current.generated = true
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != noPhase {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
}

// EndTick finishes the current frame and records it in the window.
func (p *PerfCollector) EndTick() {
	if !p.inTick {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.current.total = now.Sub(p.tickStart)

	p.window[p.next] = p.current
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
	p.inTick = false
	p.phase = noPhase
}

// AbortTick ends the current frame without recording it. A failed or
// cancelled frame would skew the averages.
func (p *PerfCollector) AbortTick() {
	p.inTick = false
	p.phase = noPhase
}

// InTick reports whether a frame is being timed.
func (p *PerfCollector) InTick() bool {
	return p.inTick
}

// RecordFrame records frame timing for the preview window.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Frames int // frames in the window

	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Per phase, keyed by FramePhases names
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64
	NsPerCell      float64 // average frame cost per grid cell, 0 if cells unset
	Regenerations  int     // frames in the window that rebuilt the initial spectrum

	// Preview window timing
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Frames:        p.filled,
		PhaseAvg:      make(map[string]time.Duration, numPhases),
		PhasePct:      make(map[string]float64, numPhases),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	for i, f := range p.window[:p.filled] {
		total += f.total
		if i == 0 || f.total < s.MinTickDuration {
			s.MinTickDuration = f.total
		}
		s.MaxTickDuration = max(s.MaxTickDuration, f.total)
		for j, d := range f.phases {
			phaseSum[j] += d
		}
		if f.generated {
			s.Regenerations++
		}
	}

	n := time.Duration(p.filled)
	s.AvgTickDuration = total / n
	for j, name := range FramePhases {
		if phaseSum[j] == 0 {
			continue
		}
		avg := phaseSum[j] / n
		s.PhaseAvg[name] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[name] = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}

	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
		if p.cells > 0 {
			s.NsPerCell = float64(s.AvgTickDuration.Nanoseconds()) / float64(p.cells)
		}
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.NsPerCell > 0 {
		attrs = append(attrs, slog.Float64("ns_per_cell", s.NsPerCell))
	}
	if s.Regenerations > 0 {
		attrs = append(attrs, slog.Int("regenerations", s.Regenerations))
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	// Fixed order keeps log lines diffable
	for _, phase := range FramePhases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row. Each phase gets an average time and a
// share of the frame.
type PerfStatsCSV struct {
	WindowEnd     uint64  `csv:"window_end"`
	Frames        int     `csv:"frames"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	NsPerCell     float64 `csv:"ns_per_cell"`
	Regenerations int     `csv:"regenerations"`
	FPS           float64 `csv:"fps"`

	GenerateUS     int64   `csv:"generate_us"`
	GeneratePct    float64 `csv:"generate_pct"`
	EvolveUS       int64   `csv:"evolve_us"`
	EvolvePct      float64 `csv:"evolve_pct"`
	TransformUS    int64   `csv:"transform_us"`
	TransformPct   float64 `csv:"transform_pct"`
	ReconstructUS  int64   `csv:"reconstruct_us"`
	ReconstructPct float64 `csv:"reconstruct_pct"`
	MeasureUS      int64   `csv:"measure_us"`
	MeasurePct     float64 `csv:"measure_pct"`
}

// phaseColumns returns the columns of the named phase.
func (c *PerfStatsCSV) phaseColumns(phase string) (us *int64, pct *float64) {
	switch phase {
	case PhaseGenerate:
		return &c.GenerateUS, &c.GeneratePct
	case PhaseEvolve:
		return &c.EvolveUS, &c.EvolvePct
	case PhaseTransform:
		return &c.TransformUS, &c.TransformPct
	case PhaseReconstruct:
		return &c.ReconstructUS, &c.ReconstructPct
	case PhaseMeasure:
		return &c.MeasureUS, &c.MeasurePct
	}
	return nil, nil
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	row := PerfStatsCSV{
		WindowEnd:     windowEnd,
		Frames:        s.Frames,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		NsPerCell:     s.NsPerCell,
		Regenerations: s.Regenerations,
		FPS:           s.FPS,
	}
	for _, phase := range FramePhases {
		us, pct := row.phaseColumns(phase)
		*us = s.PhaseAvg[phase].Microseconds()
		*pct = s.PhasePct[phase]
	}
	return row
}
