package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Frame        uint64
	SimTime      float64
	N            int
	PatchLength  float64
	Wind         [2]float64
	Seed         uint64
	Speed        int
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Frame: %d | t=%.2fs | Speed: %dx", data.Frame, data.SimTime, data.Speed),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("N=%d | L=%.0fm | wind=(%.1f, %.1f) | seed=%d",
			data.N, data.PatchLength, data.Wind[0], data.Wind[1], data.Seed),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
	rl.DrawFPS(screenWidth-90, screenHeight-25)
}

// SeaStateData holds the surface statistics of the latest frame.
type SeaStateData struct {
	Hs           float64
	MeanHeight   float64
	MinHeight    float64
	MaxHeight    float64
	FoamCoverage float64
	MeanFoam     float64
	MaxResidue   float64
	ClampedBins  int
}

// SeaStatePanel renders surface statistics as labelled bars.
type SeaStatePanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewSeaStatePanel creates a new sea state panel.
func NewSeaStatePanel(x, y, width int32) *SeaStatePanel {
	return &SeaStatePanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the panel and returns the Y below it.
func (s *SeaStatePanel) Draw(data SeaStateData) int32 {
	r := s.renderer
	pad := r.Theme.Padding
	height := 7*r.Theme.LineHeight + 2*pad + 8
	r.DrawPanel(s.x, s.y, s.width, height)

	x, y := s.x+pad, s.y+pad
	inner := s.width - 2*pad
	extent := max(-data.MinHeight, data.MaxHeight)

	y = r.DrawSectionHeader(x, y, "Sea State")
	y = r.DrawLabelValue(x, y, "Hs", fmt.Sprintf("%.2f m", data.Hs))
	y = r.DrawCenteredBar(x, y, "Mean", float32(data.MeanHeight), float32(extent), inner)
	y = r.DrawLabelValue(x, y, "Range", fmt.Sprintf("%.2f .. %.2f m", data.MinHeight, data.MaxHeight))
	y = r.DrawBar(x, y, "Foam", float32(data.FoamCoverage), inner)
	y = r.DrawBar(x, y, "Intensity", float32(data.MeanFoam), inner)
	y = r.DrawLabelValue(x, y, "Residue", fmt.Sprintf("%.1e", data.MaxResidue))
	if data.ClampedBins > 0 {
		rl.DrawText(fmt.Sprintf("%d spectrum bins clamped", data.ClampedBins), x, y, r.Theme.FontSize, rl.Orange)
	}
	return s.y + height
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Total      time.Duration
	FPS        float64
}

// PerfPanel renders the per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel with phases listed in the given order.
func (p *PerfPanel) Draw(data PerfPanelData, phases []string) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s (%.0f fps)", data.Total.Round(time.Microsecond), data.FPS), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range phases {
		avg := data.PhaseTimes[name]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
