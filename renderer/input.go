package renderer

import (
	"log/slog"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swell/game"
)

// windStep is the wind rotation per Q/E press.
const windStep = math.Pi / 12

// HandleInput processes keyboard input.
func (v *OceanView) HandleInput(g *game.Game) {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.AdjustSpeed(-1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.AdjustSpeed(1)
	}

	if rl.IsKeyPressed(rl.KeyT) {
		v.showInsets = !v.showInsets
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		v.showPerf = !v.showPerf
	}

	if rl.IsKeyPressed(rl.KeyQ) {
		g.RotateWind(windStep)
	}
	if rl.IsKeyPressed(rl.KeyE) {
		g.RotateWind(-windStep)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Reseed(uint64(time.Now().UnixNano()))
	}

	if rl.IsKeyPressed(rl.KeyP) {
		if err := v.ExportMaps(g); err != nil {
			slog.Error("failed to export maps", "error", err)
		}
	}

	v.handleCameraInput()
}

// handleCameraInput processes orbit and zoom controls.
func (v *OceanView) handleCameraInput() {
	cam := v.camera
	step := 1.5 * rl.GetFrameTime()

	if rl.IsKeyDown(rl.KeyRight) {
		cam.Orbit(step, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		cam.Orbit(-step, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		cam.Orbit(0, step)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		cam.Orbit(0, -step)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}
