package game

import (
	"log/slog"
)

// recordFrame measures the current frame and appends it to frames.csv.
func (g *Game) recordFrame() {
	g.last = g.meter.Measure(g.frame)
	g.collector.Record(g.last)

	if g.outputManager != nil {
		if err := g.outputManager.WriteFrame(g.last); err != nil {
			slog.Error("failed to write frame", "error", err)
		}
	}
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	frame := g.sim.Frames()
	if !g.collector.ShouldFlush(frame) {
		return
	}

	stats := g.collector.Flush(frame)
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteWindow(stats); err != nil {
			slog.Error("failed to write stats window", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
