package ocean

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/swell/grid"
	"github.com/pthm-cable/swell/spectral"
)

// SurfaceParams holds the reconstruction scale factors.
type SurfaceParams struct {
	HeightScale     float64
	XZFactor        float64 // horizontal displacement (choppiness) scale
	BubbleScale     float64
	BubbleThreshold float64
	CellSize        float64 // world distance between neighbouring cells
}

// Fields holds the five spatial-domain fields of one frame.
type Fields struct {
	Height *grid.Real
	SlopeX *grid.Real
	SlopeZ *grid.Real
	DispX  *grid.Real
	DispZ  *grid.Real

	// Residue per channel, as reported by the inverse transform.
	Residue [numChannels]spectral.Residue
}

// NewFields allocates five zeroed N×N fields.
func NewFields(n int) (*Fields, error) {
	var f Fields
	for c := Channel(0); c < numChannels; c++ {
		g, err := grid.NewReal(n)
		if err != nil {
			return nil, configErr("fft_size", "%v", err)
		}
		*f.channel(c) = g
	}
	return &f, nil
}

func (f *Fields) channel(c Channel) **grid.Real {
	switch c {
	case ChannelHeight:
		return &f.Height
	case ChannelSlopeX:
		return &f.SlopeX
	case ChannelSlopeZ:
		return &f.SlopeZ
	case ChannelDispX:
		return &f.DispX
	default:
		return &f.DispZ
	}
}

// Channel returns the field for c.
func (f *Fields) Channel(c Channel) *grid.Real {
	return *f.channel(c)
}

// MaxResidue returns the largest relative residue over all channels.
func (f *Fields) MaxResidue() float64 {
	var m float64
	for _, r := range f.Residue {
		m = max(m, r.Relative())
	}
	return m
}

// Vertex is the reconstructed output of one grid cell.
type Vertex struct {
	Offset mgl32.Vec3
	Normal mgl32.Vec3
	Foam   float32
}

// Maps is the renderer-facing output: a displacement map and a normal map
// carrying foam in W.
type Maps struct {
	N            int
	Displacement []mgl32.Vec3
	NormalFoam   []mgl32.Vec4
}

// NewMaps allocates output maps for an N×N grid.
func NewMaps(n int) *Maps {
	return &Maps{
		N:            n,
		Displacement: make([]mgl32.Vec3, n*n),
		NormalFoam:   make([]mgl32.Vec4, n*n),
	}
}

// Vertex returns the output of cell (x, z).
func (m *Maps) Vertex(x, z int) Vertex {
	i := z*m.N + x
	nf := m.NormalFoam[i]
	return Vertex{
		Offset: m.Displacement[i],
		Normal: nf.Vec3(),
		Foam:   nf.W(),
	}
}

// Foam maps the displacement Jacobian terms to a foam intensity in [0, 1].
// It is zero wherever jx·jz >= threshold.
func Foam(jx, jz, threshold, scale float64) float64 {
	f := max(0, threshold-jx*jz) * scale
	return min(f, 1)
}

// Reconstruct combines the spatial fields into displacement, normal and foam.
func Reconstruct(dst *Maps, f *Fields, p SurfaceParams) error {
	if err := checkReconstruct(dst, f, p); err != nil {
		return err
	}
	reconstructInto(nil, dst, f, p)
	return nil
}

func checkReconstruct(dst *Maps, f *Fields, p SurfaceParams) error {
	if dst == nil || f == nil {
		return configErr("surface", "maps and fields must be non-nil")
	}
	if !(p.CellSize > 0) {
		return configErr("cell_size", "must be positive, got %v", p.CellSize)
	}
	for c := Channel(0); c < numChannels; c++ {
		if g := f.Channel(c); g == nil || g.N != dst.N {
			return configErr("surface", "%s field does not match map size %d", c, dst.N)
		}
	}
	return nil
}

// reconstructInto evaluates every cell. Derivatives of the displacement
// fields use periodic central differences since the patch tiles.
func reconstructInto(pool *workerPool, dst *Maps, f *Fields, p SurfaceParams) {
	n := dst.N
	inv2h := 1 / (2 * p.CellSize)

	pool.run(n*n, func(start, end int) {
		for i := start; i < end; i++ {
			x, z := i%n, i/n

			h := f.Height.Data[i]
			dx := f.DispX.Data[i]
			dz := f.DispZ.Data[i]
			sx := f.SlopeX.Data[i] * p.HeightScale
			sz := f.SlopeZ.Data[i] * p.HeightScale

			dst.Displacement[i] = mgl32.Vec3{
				float32(dx * p.XZFactor),
				float32(h * p.HeightScale),
				float32(dz * p.XZFactor),
			}

			inv := 1 / math.Sqrt(sx*sx+1+sz*sz)

			ddx := (f.DispX.AtWrap(x+1, z) - f.DispX.AtWrap(x-1, z)) * inv2h
			ddz := (f.DispZ.AtWrap(x, z+1) - f.DispZ.AtWrap(x, z-1)) * inv2h
			jx := 1 + p.XZFactor*ddx
			jz := 1 + p.XZFactor*ddz
			foam, _ := finiteOr0(Foam(jx, jz, p.BubbleThreshold, p.BubbleScale))

			dst.NormalFoam[i] = mgl32.Vec4{
				float32(-sx * inv),
				float32(inv),
				float32(-sz * inv),
				float32(foam),
			}
		}
	})
}
