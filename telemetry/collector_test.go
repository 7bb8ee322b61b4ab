package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(3)

	frames := []FrameStats{
		{Frame: 1, Time: 0.1, SignificantWaveHeight: 1, MinHeight: -1, MaxHeight: 1, FoamCoverage: 0.1, MaxResidue: 1e-9},
		{Frame: 2, Time: 0.2, SignificantWaveHeight: 2, MinHeight: -2, MaxHeight: 0.5, FoamCoverage: 0.3, MaxResidue: 1e-7},
		{Frame: 3, Time: 0.3, SignificantWaveHeight: 3, MinHeight: -0.5, MaxHeight: 2, FoamCoverage: 0.2, MaxResidue: 1e-8, ClampedBins: 4},
	}
	for _, f := range frames {
		if c.ShouldFlush(f.Frame - 1) {
			t.Fatalf("flush requested before frame %d", f.Frame)
		}
		c.Record(f)
	}
	if !c.ShouldFlush(3) {
		t.Fatal("window of 3 frames not ready at frame 3")
	}

	w := c.Flush(3)
	if w.WindowStartFrame != 0 || w.WindowEndFrame != 3 || w.Frames != 3 {
		t.Errorf("window bounds = [%d, %d] with %d frames", w.WindowStartFrame, w.WindowEndFrame, w.Frames)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"mean_hs", w.MeanHs, 2},
		{"max_hs", w.MaxHs, 3},
		{"min_height", w.MinHeight, -2},
		{"max_height", w.MaxHeight, 2},
		{"mean_foam_coverage", w.MeanFoamCoverage, 0.2},
		{"max_foam_coverage", w.MaxFoamCoverage, 0.3},
		{"max_residue", w.MaxResidue, 1e-7},
		{"sim_time", w.SimTime, 0.3},
	}
	for _, ch := range checks {
		if math.Abs(ch.got-ch.want) > 1e-12 {
			t.Errorf("%s = %v, want %v", ch.name, ch.got, ch.want)
		}
	}
	if w.ClampedBins != 4 {
		t.Errorf("clamped = %d, want 4", w.ClampedBins)
	}

	if c.ShouldFlush(5) {
		t.Error("new window should start at frame 3")
	}
	if !c.ShouldFlush(6) {
		t.Error("second window not ready at frame 6")
	}
}

func TestCollectorEmptyWindow(t *testing.T) {
	c := NewCollector(0)
	if c.WindowFrames() != 1 {
		t.Errorf("WindowFrames = %d, want 1", c.WindowFrames())
	}

	w := c.Flush(1)
	if w.Frames != 0 || w.MinHeight != 0 || w.MaxHeight != 0 || w.MeanHs != 0 {
		t.Errorf("empty window = %+v, want zero values", w)
	}
}
