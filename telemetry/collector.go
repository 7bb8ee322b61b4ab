package telemetry

import "math"

// Collector accumulates FrameStats within windows of frames and produces
// WindowStats.
type Collector struct {
	windowFrames uint64

	// Current window tracking
	windowStart uint64
	frames      int

	sumHs       float64
	maxHs       float64
	minHeight   float64
	maxHeight   float64
	sumCoverage float64
	maxCoverage float64
	maxResidue  float64
	clamped     int
	lastTime    float64
}

// NewCollector creates a collector flushing every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	c := &Collector{windowFrames: uint64(windowFrames)}
	c.reset(0)
	return c
}

// Record adds one frame to the current window.
func (c *Collector) Record(s FrameStats) {
	c.frames++
	c.sumHs += s.SignificantWaveHeight
	c.maxHs = max(c.maxHs, s.SignificantWaveHeight)
	c.minHeight = min(c.minHeight, s.MinHeight)
	c.maxHeight = max(c.maxHeight, s.MaxHeight)
	c.sumCoverage += s.FoamCoverage
	c.maxCoverage = max(c.maxCoverage, s.FoamCoverage)
	c.maxResidue = max(c.maxResidue, s.MaxResidue)
	c.clamped = s.ClampedBins
	c.lastTime = s.Time
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(frame uint64) bool {
	return frame-c.windowStart >= c.windowFrames
}

// Flush produces a WindowStats and resets for the next window.
func (c *Collector) Flush(frame uint64) WindowStats {
	stats := WindowStats{
		WindowStartFrame: c.windowStart,
		WindowEndFrame:   frame,
		SimTime:          c.lastTime,
		Frames:           c.frames,
		MaxHs:            c.maxHs,
		MaxFoamCoverage:  c.maxCoverage,
		MaxResidue:       c.maxResidue,
		ClampedBins:      c.clamped,
	}
	if c.frames > 0 {
		stats.MeanHs = c.sumHs / float64(c.frames)
		stats.MeanFoamCoverage = c.sumCoverage / float64(c.frames)
		stats.MinHeight = c.minHeight
		stats.MaxHeight = c.maxHeight
	}

	c.reset(frame)
	return stats
}

func (c *Collector) reset(frame uint64) {
	c.windowStart = frame
	c.frames = 0
	c.sumHs = 0
	c.maxHs = 0
	c.minHeight = math.Inf(1)
	c.maxHeight = math.Inf(-1)
	c.sumCoverage = 0
	c.maxCoverage = 0
	c.maxResidue = 0
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int {
	return int(c.windowFrames)
}
