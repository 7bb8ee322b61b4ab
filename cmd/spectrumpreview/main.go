// Spectrum preview tool - interactive view of the Phillips spectrum and the
// height field it produces, with sliders for the spectrum inputs.
//
// Usage: go run ./cmd/spectrumpreview [-config file.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/swell/config"
	"github.com/pthm-cable/swell/grid"
	"github.com/pthm-cable/swell/ocean"
)

const (
	windowWidth  = 1200
	windowHeight = 720
	previewSize  = 400
	previewN     = 128
	panelX       = 2*previewSize + 40
	panelWidth   = windowWidth - panelX - 10
)

// tunables is the subset of the config the tool edits and exports.
type tunables struct {
	Ocean    config.OceanConfig    `yaml:"ocean"`
	Spectrum config.SpectrumConfig `yaml:"spectrum"`
}

// sliders holds the slider positions. Amplitude and damping move in log10.
type sliders struct {
	WindAngle   float32 // degrees
	WindSpeed   float32 // m/s
	LogA        float32
	LogDamping  float32
	Seed        float32
	AgainstWind bool
}

func slidersFrom(cfg *config.Config) sliders {
	w := cfg.Ocean.Wind
	angle := math.Atan2(w.Y, w.X) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return sliders{
		WindAngle:   float32(angle),
		WindSpeed:   float32(math.Hypot(w.X, w.Y)),
		LogA:        float32(math.Log10(math.Max(cfg.Ocean.PhillipsFactor, 1e-6))),
		LogDamping:  float32(math.Log10(math.Max(cfg.Spectrum.DampingFraction, 1e-6))),
		Seed:        float32(cfg.Ocean.Seed % 100000),
		AgainstWind: cfg.Spectrum.SuppressAgainstWind,
	}
}

// apply writes the slider values into cfg.
func (s sliders) apply(cfg *config.Config) {
	rad := float64(s.WindAngle) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	cfg.Ocean.Wind = config.Vec2{X: float64(s.WindSpeed) * cos, Y: float64(s.WindSpeed) * sin}
	cfg.Ocean.PhillipsFactor = math.Pow(10, float64(s.LogA))
	cfg.Spectrum.DampingFraction = math.Pow(10, float64(s.LogDamping))
	cfg.Ocean.Seed = max(1, uint64(s.Seed))
	cfg.Spectrum.SuppressAgainstWind = s.AgainstWind
	cfg.Recompute()
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (empty = use embedded defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.Ocean.FFTSize = previewN
	if cfg.Ocean.Seed == 0 {
		cfg.Ocean.Seed = 12345
	}
	cfg.Recompute()
	defaults := *cfg

	sim, err := ocean.NewSimulation(ocean.ParamsFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer sim.Close()

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(windowWidth, windowHeight, "Spectrum Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	img := rl.GenImageColor(previewN, previewN, rl.Black)
	spectrumTex := rl.LoadTextureFromImage(img)
	heightTex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(spectrumTex)
	defer rl.UnloadTexture(heightTex)
	pixels := make([]color.RGBA, previewN*previewN)

	params := slidersFrom(cfg)
	var t float64
	animating := false
	var frame *ocean.Frame
	needsTick := true

	for !rl.WindowShouldClose() {
		if animating {
			t += float64(rl.GetFrameTime())
			needsTick = true
		}

		if needsTick {
			frame, err = sim.Tick(context.Background(), t)
			if err != nil {
				slog.Error("tick failed", "error", err)
				os.Exit(1)
			}
			fillSpectrum(pixels, sim.Phillips())
			rl.UpdateTexture(spectrumTex, pixels)
			fillHeight(pixels, frame.Maps)
			rl.UpdateTexture(heightTex, pixels)
			needsTick = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPanel(spectrumTex, 10, "log10 P(k)")
		drawPanel(heightTex, previewSize+20, fmt.Sprintf("height  t=%.2fs", t))

		// Draw stats
		statsY := int32(previewSize + 45)
		hMin, hMax := heightRange(frame.Maps)
		rl.DrawText(fmt.Sprintf("Height min %.3f  max %.3f", hMin, hMax), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Clamped bins %d   residue %.2e", frame.Clamped, frame.Fields.MaxResidue()),
			15, statsY+20, 16, rl.DarkGray)
		p := sim.Params()
		rl.DrawText(fmt.Sprintf("Patch %.0fm   wind (%.2f, %.2f) m/s   A %.4g   l %.2e m",
			p.PatchLength(), p.Wind[0], p.Wind[1], p.PhillipsFactor, p.DampingFraction*p.PatchScale),
			15, statsY+40, 16, rl.DarkGray)

		// Control panel
		next := params
		y := float32(10)
		rl.DrawText("Spectrum Parameters", panelX, int32(y), 20, rl.DarkGray)
		y += 35

		next.WindAngle = slider(&y, "Wind direction (deg)", "0", "360", next.WindAngle, 0, 360, "%.0f")
		next.WindSpeed = slider(&y, "Wind speed (m/s)", "1", "40", next.WindSpeed, 1, 40, "%.1f")
		next.LogA = slider(&y, "Amplitude A (log10)", "-3", "3", next.LogA, -3, 3, "%.2f")
		next.LogDamping = slider(&y, "Damping fraction (log10)", "-4", "0", next.LogDamping, -4, 0, "%.2f")
		next.Seed = float32(int(slider(&y, "Seed", "1", "99999", next.Seed, 1, 99999, "%.0f")))

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 250, Height: 30},
			toggleText(next.AgainstWind, "Against wind: suppressed", "Against wind: kept")) {
			next.AgainstWind = !next.AgainstWind
		}
		y += 45

		// Separator
		rl.DrawLine(panelX, int32(y), panelX+panelWidth-20, int32(y), rl.LightGray)
		y += 15

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Reset Time") {
			t = 0
			needsTick = true
		}
		y += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, "Random Seed") {
			next.Seed = float32(rl.GetRandomValue(1, 99999))
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Reset All") {
			*cfg = defaults
			next = slidersFrom(cfg)
			params = next
			t = 0
			if err := sim.Reconfigure(ocean.ParamsFromConfig(cfg)); err != nil {
				slog.Warn("rejected parameters", "error", err)
			}
			needsTick = true
		}
		y += 55

		if next != params {
			params = next
			params.apply(cfg)
			if err := sim.Reconfigure(ocean.ParamsFromConfig(cfg)); err != nil {
				slog.Warn("rejected parameters", "error", err)
			}
			needsTick = true
		}

		// Output YAML
		out, err := yaml.Marshal(tunables{Ocean: cfg.Ocean, Spectrum: cfg.Spectrum})
		if err != nil {
			slog.Error("failed to marshal yaml", "error", err)
		}
		rl.DrawText("YAML Config:", panelX, int32(y), 16, rl.DarkGray)
		y += 25
		for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
			rl.DrawText(line, panelX, int32(y), 14, rl.Gray)
			y += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", panelX, windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) && err == nil {
			rl.SetClipboardText(strings.TrimRight(string(out), "\n"))
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar at *y, advances *y and returns the new value.
func slider(y *float32, label, minText, maxText string, value, lo, hi float32, format string) float32 {
	rl.DrawText(label, panelX, int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		minText, maxText,
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, v), panelX+panelWidth-70, int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func drawPanel(tex rl.Texture2D, x int32, label string) {
	rl.DrawTexturePro(
		tex,
		rl.Rectangle{X: 0, Y: 0, Width: previewN, Height: previewN},
		rl.Rectangle{X: float32(x), Y: 30, Width: previewSize, Height: previewSize},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)
	rl.DrawRectangleLines(x, 30, previewSize, previewSize, rl.DarkGray)
	rl.DrawText(label, x, 8, 18, rl.DarkGray)
}

// fillSpectrum shades log10 P(k) over the top six decades of the grid.
func fillSpectrum(dst []color.RGBA, p *grid.Real) {
	if p == nil {
		return
	}
	peak := 0.0
	for _, v := range p.Data {
		peak = max(peak, v)
	}
	if peak <= 0 {
		clear(dst)
		return
	}
	const decades = 6
	top := math.Log10(peak)
	for i, v := range p.Data {
		s := 0.0
		if v > 0 {
			s = clamp01((math.Log10(v) - top + decades) / decades)
		}
		dst[i] = inferno(s)
	}
}

// fillHeight shades displacement Y between the frame's extremes.
func fillHeight(dst []color.RGBA, m *ocean.Maps) {
	lo, hi := heightRange(m)
	span := hi - lo
	for i, d := range m.Displacement {
		v := 0.5
		if span > 0 {
			v = (float64(d.Y()) - lo) / span
		}
		c := uint8(255 * clamp01(v))
		dst[i] = color.RGBA{R: c / 4, G: c / 2, B: c, A: 255}
	}
}

func heightRange(m *ocean.Maps) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, d := range m.Displacement {
		y := float64(d.Y())
		lo = min(lo, y)
		hi = max(hi, y)
	}
	return lo, hi
}

// inferno approximates the inferno colormap: black -> purple -> orange -> yellow.
func inferno(s float64) color.RGBA {
	var r, g, b float64
	switch {
	case s < 0.33:
		u := s / 0.33
		r, g, b = 80*u, 10*u, 100*u
	case s < 0.66:
		u := (s - 0.33) / 0.33
		r, g, b = 80+150*u, 10+60*u, 100-80*u
	default:
		u := (s - 0.66) / 0.34
		r, g, b = 230+22*u, 70+180*u, 20+140*u
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
