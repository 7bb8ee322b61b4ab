package telemetry

import (
	"log/slog"
)

// WindowStats holds aggregated surface statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame uint64  `csv:"-"`
	WindowEndFrame   uint64  `csv:"window_end"`
	SimTime          float64 `csv:"sim_time"`
	Frames           int     `csv:"frames"`

	// Sea state
	MeanHs    float64 `csv:"mean_hs"`
	MaxHs     float64 `csv:"max_hs"`
	MinHeight float64 `csv:"min_height"`
	MaxHeight float64 `csv:"max_height"`

	// Foam
	MeanFoamCoverage float64 `csv:"mean_foam_coverage"`
	MaxFoamCoverage  float64 `csv:"max_foam_coverage"`

	// Numerical health
	MaxResidue  float64 `csv:"max_residue"`
	ClampedBins int     `csv:"clamped_bins"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartFrame),
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTime),
		slog.Int("frames", s.Frames),
		slog.Float64("mean_hs", s.MeanHs),
		slog.Float64("max_hs", s.MaxHs),
		slog.Float64("min_height", s.MinHeight),
		slog.Float64("max_height", s.MaxHeight),
		slog.Float64("mean_foam_coverage", s.MeanFoamCoverage),
		slog.Float64("max_foam_coverage", s.MaxFoamCoverage),
		slog.Float64("max_residue", s.MaxResidue),
		slog.Int("clamped_bins", s.ClampedBins),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTime,
		"hs", s.MeanHs,
		"max_hs", s.MaxHs,
		"min_height", s.MinHeight,
		"max_height", s.MaxHeight,
		"foam", s.MeanFoamCoverage,
		"max_residue", s.MaxResidue,
		"clamped", s.ClampedBins,
	)
}
