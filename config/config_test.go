package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Ocean.FFTSize != 1024 {
		t.Errorf("FFTSize = %d, want 1024", cfg.Ocean.FFTSize)
	}
	if cfg.Spectrum.Gravity != 9.81 {
		t.Errorf("Gravity = %v, want 9.81", cfg.Spectrum.Gravity)
	}
	if cfg.Spectrum.SuppressAgainstWind {
		t.Error("expected squared-cosine (omnidirectional) wind policy by default")
	}
	if cfg.Derived.PatchLength != 1024 {
		t.Errorf("PatchLength = %v, want 1024", cfg.Derived.PatchLength)
	}
	if math.Abs(cfg.Derived.WindSpeed-math.Sqrt(200)) > 1e-12 {
		t.Errorf("WindSpeed = %v, want %v", cfg.Derived.WindSpeed, math.Sqrt(200))
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ocean.yaml")
	overlay := []byte("ocean:\n  fft_size: 256\n  patch_scale: 2.0\nsurface:\n  xz_factor: 0.5\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Ocean.FFTSize != 256 {
		t.Errorf("FFTSize = %d, want 256", cfg.Ocean.FFTSize)
	}
	if cfg.Surface.XZFactor != 0.5 {
		t.Errorf("XZFactor = %v, want 0.5", cfg.Surface.XZFactor)
	}
	// Untouched keys keep their defaults
	if cfg.Ocean.Wind.X != 10 || cfg.Ocean.Wind.Y != 10 {
		t.Errorf("Wind = %+v, want defaults", cfg.Ocean.Wind)
	}
	if cfg.Derived.PatchLength != 512 {
		t.Errorf("PatchLength = %v, want 512", cfg.Derived.PatchLength)
	}
	if math.Abs(cfg.Derived.DampingLength-0.002) > 1e-12 {
		t.Errorf("DampingLength = %v, want 0.002", cfg.Derived.DampingLength)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("ocean: [unterminated")); err == nil {
		t.Error("expected parse error")
	}
}

func TestMeshDefaultsFromFFTSize(t *testing.T) {
	cfg, err := Parse([]byte("ocean:\n  fft_size: 64\nmesh:\n  grid_x: 0\n  grid_y: 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mesh.GridX != 32 || cfg.Mesh.GridY != 32 {
		t.Errorf("mesh grid = %dx%d, want 32x32", cfg.Mesh.GridX, cfg.Mesh.GridY)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Ocean.Seed = 42

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot error: %v", err)
	}
	if back.Ocean.Seed != 42 {
		t.Errorf("Seed = %d, want 42", back.Ocean.Seed)
	}
}

func TestInitAndCfg(t *testing.T) {
	old := global
	defer func() { global = old }()

	global = nil
	defer func() {
		if recover() == nil {
			t.Error("Cfg() before Init() should panic")
		}
	}()

	if err := Init(""); err != nil {
		t.Fatal(err)
	}
	if Cfg().Ocean.FFTSize == 0 {
		t.Error("Cfg() returned empty config")
	}

	global = nil
	Cfg()
}
