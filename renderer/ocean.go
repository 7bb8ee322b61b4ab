// Package renderer draws a running ocean in a raylib window.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/swell/camera"
	"github.com/pthm-cable/swell/game"
	"github.com/pthm-cable/swell/telemetry"
	"github.com/pthm-cable/swell/ui"
)

const insetSize = 256

var background = color.RGBA{R: 8, G: 12, B: 24, A: 255}

// OceanView renders the displaced grid as a wireframe plus height and foam
// map insets.
type OceanView struct {
	camera *camera.Camera

	heightTex rl.Texture2D
	foamTex   rl.Texture2D
	texSize   int
	pixels    []color.RGBA
	displaced []mgl32.Vec3

	hud      *ui.HUD
	seaState *ui.SeaStatePanel
	perf     *ui.PerfPanel

	showInsets  bool
	showPerf    bool
	initialized bool
}

// NewOceanView creates a view for g.
func NewOceanView(g *game.Game) *OceanView {
	return &OceanView{
		camera:     camera.New(float32(g.Params().PatchLength())),
		hud:        ui.NewHUD(),
		seaState:   ui.NewSeaStatePanel(10, 100, 300),
		perf:       ui.NewPerfPanel(10, 0),
		showInsets: true,
	}
}

// Init allocates the textures (must be called after the raylib window is created).
func (v *OceanView) Init(n int) {
	if v.initialized && v.texSize == n {
		return
	}
	v.Unload()

	img := rl.GenImageColor(n, n, rl.Black)
	v.heightTex = rl.LoadTextureFromImage(img)
	v.foamTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	v.texSize = n
	v.pixels = make([]color.RGBA, n*n)
	v.initialized = true
}

// Draw renders the latest frame of g.
func (v *OceanView) Draw(g *game.Game) {
	g.Perf().RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(background)

	if frame := g.Current(); frame != nil {
		v.drawSurface(g)
		if v.showInsets {
			v.updateTextures(g)
			v.drawInsets()
		}
	}
	v.drawHUD(g)

	rl.EndDrawing()
}

// drawSurface draws the displaced grid tinted by foam.
func (v *OceanView) drawSurface(g *game.Game) {
	grid := g.Grid()
	maps := g.Current().Maps
	v.displaced = grid.Displace(v.displaced, maps)

	eye := v.camera.Eye()
	cam := rl.NewCamera3D(toRL(eye), toRL(v.camera.Target), rl.NewVector3(0, 1, 0), 45, rl.CameraPerspective)

	rl.BeginMode3D(cam)
	stride := grid.SizeX + 1
	for i := 0; i <= grid.SizeY; i++ {
		for j := 0; j <= grid.SizeX; j++ {
			p := i*stride + j
			a := toRL(v.displaced[p])
			col := foamColor(grid.Sample(maps, p).Foam)
			if j < grid.SizeX {
				rl.DrawLine3D(a, toRL(v.displaced[p+1]), col)
			}
			if i < grid.SizeY {
				rl.DrawLine3D(a, toRL(v.displaced[p+stride]), col)
			}
		}
	}
	rl.EndMode3D()
}

func toRL(p mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(p.X(), p.Y(), p.Z())
}

// updateTextures uploads the height and foam maps of the latest frame.
func (v *OceanView) updateTextures(g *game.Game) {
	maps := g.Current().Maps
	v.Init(maps.N)

	s := g.LastStats()
	extent := float32(max(-s.MinHeight, s.MaxHeight))
	for i, d := range maps.Displacement {
		v.pixels[i] = heightColor(normalize(d.Y(), extent))
	}
	rl.UpdateTexture(v.heightTex, v.pixels)

	for i, nf := range maps.NormalFoam {
		v.pixels[i] = foamColor(nf.W())
	}
	rl.UpdateTexture(v.foamTex, v.pixels)
}

func (v *OceanView) drawInsets() {
	n := float32(v.texSize)
	x := float32(rl.GetScreenWidth()) - insetSize - 10
	src := rl.Rectangle{X: 0, Y: 0, Width: n, Height: n}

	labels := []string{"height", "foam"}
	for i, tex := range []rl.Texture2D{v.heightTex, v.foamTex} {
		y := float32(10 + i*(insetSize+30))
		rl.DrawTexturePro(tex, src, rl.Rectangle{X: x, Y: y, Width: insetSize, Height: insetSize}, rl.Vector2{}, 0, rl.White)
		rl.DrawRectangleLines(int32(x), int32(y), insetSize, insetSize, rl.DarkGray)
		rl.DrawText(labels[i], int32(x), int32(y)+insetSize+4, 16, rl.LightGray)
	}
}

func (v *OceanView) drawHUD(g *game.Game) {
	p := g.Params()
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	v.hud.Draw(ui.HUDData{
		Title:        "Ocean",
		Frame:        g.Frame(),
		SimTime:      g.SimTime(),
		N:            p.Size,
		PatchLength:  p.PatchLength(),
		Wind:         p.Wind,
		Seed:         p.Seed,
		Speed:        g.StepsPerUpdate(),
		Paused:       g.Paused(),
		ScreenWidth:  w,
		ScreenHeight: h,
	})

	s := g.LastStats()
	y := v.seaState.Draw(ui.SeaStateData{
		Hs:           s.SignificantWaveHeight,
		MeanHeight:   s.MeanHeight,
		MinHeight:    s.MinHeight,
		MaxHeight:    s.MaxHeight,
		FoamCoverage: s.FoamCoverage,
		MeanFoam:     s.MeanFoam,
		MaxResidue:   s.MaxResidue,
		ClampedBins:  s.ClampedBins,
	})

	if v.showPerf {
		perf := g.Perf().Stats()
		v.perf.SetPosition(10, y+10)
		v.perf.Draw(ui.PerfPanelData{
			PhaseTimes: perf.PhaseAvg,
			Total:      perf.AvgTickDuration,
			FPS:        perf.FPS,
		}, telemetry.FramePhases[:])
	}

	v.hud.DrawControls(w, h, "arrows orbit  +/- zoom  Q/E wind  R reseed  T insets  F3 perf  P export")
}

// Unload releases the textures.
func (v *OceanView) Unload() {
	if !v.initialized {
		return
	}
	rl.UnloadTexture(v.heightTex)
	rl.UnloadTexture(v.foamTex)
	v.initialized = false
}
