package renderer

import (
	"fmt"
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swell/game"
)

// ExportMaps writes the height and foam maps of the latest frame as PNG
// files into the output directory, or the working directory without one.
func (v *OceanView) ExportMaps(g *game.Game) error {
	if g.Current() == nil {
		return nil
	}
	v.updateTextures(g)

	dir := g.OutputDir()
	if dir == "" {
		dir = "."
	}

	textures := []struct {
		name string
		tex  rl.Texture2D
	}{
		{"height", v.heightTex},
		{"foam", v.foamTex},
	}
	for _, t := range textures {
		path := filepath.Join(dir, fmt.Sprintf("%s_%06d.png", t.name, g.Frame()))
		img := rl.LoadImageFromTexture(t.tex)
		ok := rl.ExportImage(*img, path)
		rl.UnloadImage(img)
		if !ok {
			return fmt.Errorf("exporting %s", path)
		}
		slog.Info("map exported", "path", path)
	}
	return nil
}
