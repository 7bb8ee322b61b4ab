// Package mesh builds the flat grid the ocean maps are applied to and
// displaces it on the CPU for consumers without a vertex shader.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/swell/ocean"
)

// ErrInvalidGrid is returned for grid dimensions that produce no quads.
var ErrInvalidGrid = errors.New("mesh: invalid grid")

// Grid is a (SizeX+1)×(SizeY+1) vertex lattice in the XZ plane, centred on
// the origin, with two triangles per quad.
type Grid struct {
	SizeX, SizeY int
	Scale        float32

	Vertices []mgl32.Vec3
	UVs      []mgl32.Vec2
	Indices  []uint32
}

// BuildGrid creates the static grid topology. Vertex (j, i) sits at
// ((j-(SizeX+1)/2)·scale, 0, (i-(SizeY+1)/2)·scale) with UV j/(SizeX+1),
// i/(SizeY+1).
func BuildGrid(sizeX, sizeY int, scale float32) (*Grid, error) {
	if sizeX < 1 || sizeY < 1 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidGrid, sizeX, sizeY)
	}
	if !(scale > 0) || math.IsInf(float64(scale), 0) {
		return nil, fmt.Errorf("%w: scale %v", ErrInvalidGrid, scale)
	}
	stride := sizeX + 1
	rows := sizeY + 1
	if int64(stride)*int64(rows) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %dx%d vertices overflow 32-bit indices", ErrInvalidGrid, stride, rows)
	}

	g := &Grid{
		SizeX:    sizeX,
		SizeY:    sizeY,
		Scale:    scale,
		Vertices: make([]mgl32.Vec3, stride*rows),
		UVs:      make([]mgl32.Vec2, stride*rows),
		Indices:  make([]uint32, 0, sizeX*sizeY*6),
	}

	cx, cz := stride/2, rows/2
	for i := 0; i < rows; i++ {
		for j := 0; j < stride; j++ {
			p := i*stride + j
			g.Vertices[p] = mgl32.Vec3{float32(j-cx) * scale, 0, float32(i-cz) * scale}
			g.UVs[p] = mgl32.Vec2{float32(j) / float32(stride), float32(i) / float32(rows)}

			if i == sizeY || j == sizeX {
				continue
			}
			q := uint32(p)
			s := uint32(stride)
			g.Indices = append(g.Indices,
				q, q+s, q+s+1,
				q, q+s+1, q+1,
			)
		}
	}
	return g, nil
}

// TriangleCount returns the number of triangles in the grid.
func (g *Grid) TriangleCount() int { return len(g.Indices) / 3 }

// cell maps a vertex UV onto the nearest map cell. UVs outside [0, 1) repeat.
func cell(uv float32, n int) int {
	i := int(math.Floor(float64(uv) * float64(n)))
	return ((i % n) + n) % n
}

// Sample returns the map output under vertex p.
func (g *Grid) Sample(m *ocean.Maps, p int) ocean.Vertex {
	uv := g.UVs[p]
	return m.Vertex(cell(uv.X(), m.N), cell(uv.Y(), m.N))
}

// Displace writes each vertex moved by the displacement map into dst and
// returns it. dst is reallocated when it is too short.
func (g *Grid) Displace(dst []mgl32.Vec3, m *ocean.Maps) []mgl32.Vec3 {
	if cap(dst) < len(g.Vertices) {
		dst = make([]mgl32.Vec3, len(g.Vertices))
	}
	dst = dst[:len(g.Vertices)]
	for p, v := range g.Vertices {
		dst[p] = v.Add(g.Sample(m, p).Offset)
	}
	return dst
}
