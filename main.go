package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swell/config"
	"github.com/pthm-cable/swell/game"
	"github.com/pthm-cable/swell/renderer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Uint64("seed", 0, "Gaussian field seed (0 = config, then time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	dt := flag.Float64("dt", 0, "Headless time step in seconds (0 = use config)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Frames per update call")
	workers := flag.Int("workers", 0, "Worker goroutines per stage (0 = GOMAXPROCS)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *dt > 0 {
		cfg.Simulation.DT = *dt
		cfg.Recompute()
	}

	opts := game.Options{
		Seed:           *seed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		Workers:        *workers,
	}

	if *headless {
		runHeadless(opts, *maxFrames)
		return
	}

	// Graphical mode
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Preview.Width), int32(cfg.Preview.Height), "Swell")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Preview.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create ocean", "error", err)
		return
	}
	defer g.Unload()

	view := renderer.NewOceanView(g)
	defer view.Unload()

	for !rl.WindowShouldClose() {
		view.HandleInput(g)
		if err := g.Update(float64(rl.GetFrameTime())); err != nil {
			slog.Error("update failed", "error", err)
			return
		}
		view.Draw(g)

		if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
			break
		}
	}
}

// runHeadless ticks with the fixed config step until max frames or SIGINT.
func runHeadless(opts game.Options, maxFrames int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create ocean", "error", err)
		os.Exit(1)
	}
	defer g.Unload()
	g.WithContext(ctx)

	slog.Info("starting headless simulation",
		"max_frames", maxFrames,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		if err := g.UpdateHeadless(); err != nil {
			if ctx.Err() != nil {
				slog.Info("interrupted", "frame", g.Frame())
				return
			}
			slog.Error("frame failed", "error", err)
			return
		}

		if maxFrames > 0 && int(g.Frame()) >= maxFrames {
			slog.Info("max frames reached", "frame", g.Frame(), "stats", g.LastStats())
			return
		}
	}
}
