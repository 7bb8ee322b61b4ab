package game

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/swell/config"
	"github.com/pthm-cable/swell/ocean"
	"github.com/pthm-cable/swell/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(`
ocean:
  fft_size: 16
  patch_scale: 4
  seed: 42
mesh:
  grid_x: 8
  grid_y: 8
  grid_scale: 8
telemetry:
  stats_interval: 4
  perf_collector_window: 4
`))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestHeadlessRun(t *testing.T) {
	var windows []telemetry.WindowStats
	g, err := NewGameWithOptions(Options{
		Config:        testConfig(t),
		Headless:      true,
		Workers:       1,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()

	if g.Current() != nil {
		t.Error("frame available before the first update")
	}
	for i := 0; i < 8; i++ {
		if err := g.UpdateHeadless(); err != nil {
			t.Fatal(err)
		}
	}

	if g.Frame() != 8 {
		t.Errorf("Frame() = %d, want 8", g.Frame())
	}
	if len(windows) != 2 {
		t.Fatalf("got %d stats windows, want 2", len(windows))
	}
	if windows[1].WindowStartFrame != 4 || windows[1].WindowEndFrame != 8 || windows[1].Frames != 4 {
		t.Errorf("second window = %+v", windows[1])
	}
	if windows[0].MeanHs <= 0 {
		t.Error("zero significant wave height from a non-zero spectrum")
	}

	// Frames advance by the configured fixed step
	want := 8 * g.cfg.Simulation.DT
	if d := g.SimTime() - want; d > 1e-9 || d < -1e-9 {
		t.Errorf("SimTime() = %v, want %v", g.SimTime(), want)
	}
	if g.Current().Maps.N != 16 {
		t.Errorf("frame size = %d, want 16", g.Current().Maps.N)
	}
}

func TestHeadlessKeepsConfiguredSizes(t *testing.T) {
	g, err := NewGameWithOptions(Options{Config: testConfig(t), Headless: true, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()

	if g.params.Seed != 7 {
		t.Errorf("seed = %d, want the option to win over config", g.params.Seed)
	}
	if g.grid.SizeX != 8 || g.grid.Scale != 8 {
		t.Errorf("grid = %dx%d scale %v, want 8x8 scale 8", g.grid.SizeX, g.grid.SizeY, g.grid.Scale)
	}
}

func TestMeshLayoutPreview(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mesh.GridX, cfg.Mesh.GridY = 512, 512
	p := ocean.ParamsFromConfig(cfg)

	gx, gy, scale := meshLayout(cfg, p, false)
	if gx != 16 || gy != 16 {
		t.Errorf("preview grid = %dx%d, want capped at 16x16", gx, gy)
	}
	if scale != 4 {
		t.Errorf("preview scale = %v, want one patch (64m) over 16 cells", scale)
	}

	gx, _, _ = meshLayout(cfg, p, true)
	if gx != 512 {
		t.Errorf("headless grid = %d, want 512", gx)
	}
}

func TestHeadlessOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g, err := NewGameWithOptions(Options{Config: testConfig(t), Headless: true, OutputDir: dir, StepsPerUpdate: 2})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := g.UpdateHeadless(); err != nil {
			t.Fatal(err)
		}
	}
	g.Unload()

	for _, name := range []string{"frames.csv", "windows.csv", "perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(strings.TrimSpace(string(data)), "\n"); lines != 4 {
		t.Errorf("frames.csv has %d data rows, want 4", lines)
	}
}

func TestReconfigureWind(t *testing.T) {
	g, err := NewGameWithOptions(Options{Config: testConfig(t), Headless: true})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()
	if err := g.UpdateHeadless(); err != nil {
		t.Fatal(err)
	}

	speed := g.params.WindSpeed()
	g.RotateWind(math.Pi / 12)
	if d := g.params.WindSpeed() - speed; d > 1e-9 || d < -1e-9 {
		t.Errorf("wind speed changed from %v to %v", speed, g.params.WindSpeed())
	}
	if g.sim.Generated() {
		t.Error("wind change did not invalidate the spectrum")
	}

	bad := g.params
	bad.Size = 12
	if err := g.Reconfigure(bad); !errors.Is(err, ocean.ErrConfiguration) {
		t.Errorf("Reconfigure error = %v, want ErrConfiguration", err)
	}
	if g.params.Size != 16 {
		t.Error("failed reconfigure replaced the parameters")
	}
}

func TestUpdateHeadlessCancelled(t *testing.T) {
	g, err := NewGameWithOptions(Options{Config: testConfig(t), Headless: true})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g.WithContext(ctx)
	if err := g.UpdateHeadless(); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if g.Perf().InTick() {
		t.Error("perf collector left inside the failed frame")
	}
	if n := g.Perf().Stats().Frames; n != 0 {
		t.Errorf("perf recorded %d frames, want the failed frame dropped", n)
	}
}

func TestNewGameInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Ocean.FFTSize = 100
	if _, err := NewGameWithOptions(Options{Config: cfg, Headless: true}); !errors.Is(err, ocean.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestPauseAndSpeed(t *testing.T) {
	g, err := NewGameWithOptions(Options{Config: testConfig(t), Headless: true})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()

	g.TogglePause()
	if err := g.Update(0.1); err != nil {
		t.Fatal(err)
	}
	if g.Frame() != 0 || !g.Paused() {
		t.Errorf("paused game advanced to frame %d", g.Frame())
	}

	g.TogglePause()
	g.AdjustSpeed(2)
	if err := g.Update(0.1); err != nil {
		t.Fatal(err)
	}
	if g.Frame() != 3 {
		t.Errorf("Frame() = %d after one update at 3x, want 3", g.Frame())
	}
	if d := g.SimTime() - 0.3; d > 1e-9 || d < -1e-9 {
		t.Errorf("SimTime() = %v, want 0.3", g.SimTime())
	}

	g.AdjustSpeed(100)
	if g.StepsPerUpdate() != maxStepsPerUpdate {
		t.Errorf("speed = %d, want clamped to %d", g.StepsPerUpdate(), maxStepsPerUpdate)
	}
	g.AdjustSpeed(-100)
	if g.StepsPerUpdate() != 1 {
		t.Errorf("speed = %d, want clamped to 1", g.StepsPerUpdate())
	}
}

func TestReseed(t *testing.T) {
	g, err := NewGameWithOptions(Options{Config: testConfig(t), Headless: true})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()

	g.Reseed(99)
	if g.Params().Seed != 99 || g.sim.Params().Seed != 99 {
		t.Errorf("seed = %d, want 99", g.Params().Seed)
	}
}
