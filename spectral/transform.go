// Package spectral implements the separable 2D FFT used to move the ocean
// spectra between the frequency and spatial domains.
//
// Spectra are stored centred: bin (N/2, N/2) is the zero frequency. The
// inverse transform is the unnormalised synthesis sum followed by a
// (-1)^(x+z) sign flip, which is the same as shifting the zero frequency to
// the corner before transforming. Forward carries the 1/N² factor so that
// Inverse(Forward(f)) reproduces f.
package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/pthm-cable/swell/grid"
)

// ResidueEpsilon bounds the relative imaginary residue of a transform whose
// input is Hermitian.
const ResidueEpsilon = 1e-3

// Residue describes what an inverse transform discarded when keeping only
// the real part of its output.
type Residue struct {
	MaxImag float64 // largest |imag| over all cells
	MaxReal float64 // largest |real| over all cells
}

// Relative returns MaxImag scaled by MaxReal. A zero field has no residue.
func (r Residue) Relative() float64 {
	if r.MaxReal == 0 {
		return r.MaxImag
	}
	return r.MaxImag / r.MaxReal
}

// Transform runs 2D FFTs over N×N grids.
// A Transform holds scratch buffers and is not safe for concurrent use.
type Transform struct {
	n    int
	fft  *fourier.CmplxFFT
	line []complex128
}

// New creates a transform for N×N grids.
func New(n int) (*Transform, error) {
	if err := grid.CheckSize(n); err != nil {
		return nil, fmt.Errorf("spectral: %w", err)
	}
	return &Transform{
		n:    n,
		fft:  fourier.NewCmplxFFT(n),
		line: make([]complex128, n),
	}, nil
}

// Len returns the grid edge this transform was built for.
func (t *Transform) Len() int { return t.n }

func (t *Transform) check(n int) error {
	if n != t.n {
		return fmt.Errorf("spectral: grid size %d does not match transform size %d", n, t.n)
	}
	return nil
}

// InverseComplex2D replaces the centred spectrum in g with its spatial-domain
// sequence, in place.
func (t *Transform) InverseComplex2D(g *grid.Complex) error {
	if err := t.check(g.N); err != nil {
		return err
	}
	t.pass(g, t.fft.Sequence)
	flipSigns(g)
	return nil
}

// Forward2D replaces the spatial field in g with its centred spectrum, in
// place.
func (t *Transform) Forward2D(g *grid.Complex) error {
	if err := t.check(g.N); err != nil {
		return err
	}
	flipSigns(g)
	t.pass(g, t.fft.Coefficients)

	scale := complex(1/float64(t.n*t.n), 0)
	for i := range g.Data {
		g.Data[i] *= scale
	}
	return nil
}

// Inverse2D transforms src in place and writes the real part of the result
// into dst. The returned Residue reports the discarded imaginary part.
func (t *Transform) Inverse2D(dst *grid.Real, src *grid.Complex) (Residue, error) {
	if err := t.check(dst.N); err != nil {
		return Residue{}, err
	}
	if err := t.InverseComplex2D(src); err != nil {
		return Residue{}, err
	}

	var res Residue
	for i, v := range src.Data {
		re, im := real(v), math.Abs(imag(v))
		dst.Data[i] = re
		if a := math.Abs(re); a > res.MaxReal {
			res.MaxReal = a
		}
		if im > res.MaxImag {
			res.MaxImag = im
		}
	}
	return res, nil
}

// pass applies a 1D transform along every row, then every column.
func (t *Transform) pass(g *grid.Complex, fn func(dst, src []complex128) []complex128) {
	n := t.n

	// Rows are contiguous; transform them in place.
	for z := 0; z < n; z++ {
		row := g.Data[z*n : (z+1)*n]
		fn(row, row)
	}

	// Columns are strided; gather into scratch first.
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			t.line[z] = g.Data[z*n+x]
		}
		fn(t.line, t.line)
		for z := 0; z < n; z++ {
			g.Data[z*n+x] = t.line[z]
		}
	}
}

// flipSigns multiplies every cell by (-1)^(x+z).
func flipSigns(g *grid.Complex) {
	n := g.N
	for z := 0; z < n; z++ {
		for x := (z + 1) & 1; x < n; x += 2 {
			g.Data[z*n+x] = -g.Data[z*n+x]
		}
	}
}
