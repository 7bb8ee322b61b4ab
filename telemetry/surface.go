package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/swell/ocean"
)

// FrameStats summarises the rendered surface of one frame.
type FrameStats struct {
	Frame uint64  `csv:"frame"`
	Time  float64 `csv:"time"`

	// Heights are the vertical displacement after height scaling
	MeanHeight            float64 `csv:"mean_height"`
	HeightStdDev          float64 `csv:"height_std"`
	SignificantWaveHeight float64 `csv:"hs"` // 4σ
	MinHeight             float64 `csv:"min_height"`
	MaxHeight             float64 `csv:"max_height"`

	FoamCoverage float64 `csv:"foam_coverage"` // fraction of cells with foam > 0
	MeanFoam     float64 `csv:"mean_foam"`

	MaxResidue  float64 `csv:"max_residue"`
	ClampedBins int     `csv:"clamped_bins"`
}

// Meter measures frames, reusing its scratch buffers between calls.
type Meter struct {
	heights []float64
	foam    []float64
}

// MeasureSurface computes FrameStats for f with a throwaway Meter.
func MeasureSurface(f *ocean.Frame) FrameStats {
	var m Meter
	return m.Measure(f)
}

// Measure computes FrameStats for f.
func (m *Meter) Measure(f *ocean.Frame) FrameStats {
	maps := f.Maps
	n := len(maps.Displacement)
	if cap(m.heights) < n {
		m.heights = make([]float64, n)
		m.foam = make([]float64, n)
	}
	m.heights = m.heights[:n]
	m.foam = m.foam[:n]

	foamy := 0
	for i := range maps.Displacement {
		m.heights[i] = float64(maps.Displacement[i].Y())
		m.foam[i] = float64(maps.NormalFoam[i].W())
		if m.foam[i] > 0 {
			foamy++
		}
	}

	mean, std := stat.PopMeanStdDev(m.heights, nil)
	return FrameStats{
		Frame:                 f.Index,
		Time:                  f.Time,
		MeanHeight:            mean,
		HeightStdDev:          std,
		SignificantWaveHeight: 4 * std,
		MinHeight:             floats.Min(m.heights),
		MaxHeight:             floats.Max(m.heights),
		FoamCoverage:          float64(foamy) / float64(n),
		MeanFoam:              stat.Mean(m.foam, nil),
		MaxResidue:            f.Fields.MaxResidue(),
		ClampedBins:           f.Clamped,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frame", s.Frame),
		slog.Float64("time", s.Time),
		slog.Float64("mean_height", s.MeanHeight),
		slog.Float64("height_std", s.HeightStdDev),
		slog.Float64("hs", s.SignificantWaveHeight),
		slog.Float64("min_height", s.MinHeight),
		slog.Float64("max_height", s.MaxHeight),
		slog.Float64("foam_coverage", s.FoamCoverage),
		slog.Float64("mean_foam", s.MeanFoam),
		slog.Float64("max_residue", s.MaxResidue),
		slog.Int("clamped_bins", s.ClampedBins),
	)
}
