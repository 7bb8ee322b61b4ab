package mesh

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/swell/ocean"
)

func TestBuildGridCounts(t *testing.T) {
	tests := []struct {
		sizeX, sizeY int
	}{
		{1, 1},
		{2, 3},
		{4, 4},
		{7, 2},
	}
	for _, tt := range tests {
		g, err := BuildGrid(tt.sizeX, tt.sizeY, 1)
		if err != nil {
			t.Fatalf("BuildGrid(%d, %d): %v", tt.sizeX, tt.sizeY, err)
		}
		wantVerts := (tt.sizeX + 1) * (tt.sizeY + 1)
		if len(g.Vertices) != wantVerts || len(g.UVs) != wantVerts {
			t.Errorf("%dx%d: %d vertices, %d uvs, want %d", tt.sizeX, tt.sizeY, len(g.Vertices), len(g.UVs), wantVerts)
		}
		if got, want := g.TriangleCount(), tt.sizeX*tt.sizeY*2; got != want {
			t.Errorf("%dx%d: %d triangles, want %d", tt.sizeX, tt.sizeY, got, want)
		}
		for _, idx := range g.Indices {
			if int(idx) >= wantVerts {
				t.Fatalf("%dx%d: index %d out of range", tt.sizeX, tt.sizeY, idx)
			}
		}
	}
}

func TestBuildGridLayout(t *testing.T) {
	g, err := BuildGrid(3, 2, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	// stride 4, rows 3, centre at (2, 1)
	if got, want := g.Vertices[0], (mgl32.Vec3{-1, 0, -0.5}); got != want {
		t.Errorf("vertex 0 = %v, want %v", got, want)
	}
	if got, want := g.Vertices[4*1+2], (mgl32.Vec3{0, 0, 0}); got != want {
		t.Errorf("centre vertex = %v, want %v", got, want)
	}
	if got, want := g.UVs[4*2+3], (mgl32.Vec2{0.75, 2.0 / 3.0}); !got.ApproxEqual(want) {
		t.Errorf("last uv = %v, want %v", got, want)
	}

	wantFirstQuad := []uint32{0, 4, 5, 0, 5, 1}
	for i, want := range wantFirstQuad {
		if g.Indices[i] != want {
			t.Errorf("Indices[%d] = %d, want %d", i, g.Indices[i], want)
		}
	}
	// Second row of quads starts at vertex 4
	if g.Indices[3*6] != 4 || g.Indices[3*6+1] != 8 {
		t.Errorf("second row quad = %v", g.Indices[18:24])
	}
}

func TestBuildGridInvalid(t *testing.T) {
	tests := []struct {
		name         string
		sizeX, sizeY int
		scale        float32
	}{
		{"zero x", 0, 4, 1},
		{"negative y", 4, -1, 1},
		{"zero scale", 4, 4, 0},
		{"negative scale", 4, 4, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildGrid(tt.sizeX, tt.sizeY, tt.scale); !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("error = %v, want ErrInvalidGrid", err)
			}
		})
	}
}

func TestCellWraps(t *testing.T) {
	tests := []struct {
		uv   float32
		n    int
		want int
	}{
		{0, 8, 0},
		{0.5, 8, 4},
		{0.99, 8, 7},
		{1, 8, 0},
		{-0.125, 8, 7},
		{1.25, 4, 1},
	}
	for _, tt := range tests {
		if got := cell(tt.uv, tt.n); got != tt.want {
			t.Errorf("cell(%v, %d) = %d, want %d", tt.uv, tt.n, got, tt.want)
		}
	}
}

func TestDisplace(t *testing.T) {
	g, err := BuildGrid(3, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	m := ocean.NewMaps(4)
	for i := range m.Displacement {
		m.Displacement[i] = mgl32.Vec3{0.1, float32(i), -0.1}
	}

	out := g.Displace(nil, m)
	if len(out) != len(g.Vertices) {
		t.Fatalf("len = %d, want %d", len(out), len(g.Vertices))
	}

	// 4 vertices per row over a 4-wide map: vertex (j, i) lands on cell (j, i)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			p := i*4 + j
			want := g.Vertices[p].Add(m.Displacement[i*4+j])
			if !out[p].ApproxEqual(want) {
				t.Errorf("vertex (%d,%d) = %v, want %v", j, i, out[p], want)
			}
		}
	}

	again := g.Displace(out, m)
	if &again[0] != &out[0] {
		t.Error("Displace reallocated a large enough buffer")
	}
}
