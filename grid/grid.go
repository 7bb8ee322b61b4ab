// Package grid provides the square N×N grids passed between pipeline stages.
//
// Cells are stored row-major: the cell at column x, row z lives at
// Data[z*N+x]. The x axis carries the kx wavenumber component and the z axis
// carries kz. Spectra use a centred layout where (N/2, N/2) is the DC bin.
package grid

import (
	"fmt"
	"math/bits"
)

// MinSize is the smallest grid edge accepted by the pipeline.
const MinSize = 4

// Complex is an N×N grid of complex values.
type Complex struct {
	N    int
	Data []complex128
}

// Real is an N×N grid of real values (a spatial field).
type Real struct {
	N    int
	Data []float64
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}

// CheckSize returns an error unless n is a power of two and at least MinSize.
func CheckSize(n int) error {
	if !IsPowerOfTwo(n) {
		return fmt.Errorf("grid size %d is not a power of two", n)
	}
	if n < MinSize {
		return fmt.Errorf("grid size %d is below minimum %d", n, MinSize)
	}
	return nil
}

// NewComplex allocates a zeroed N×N complex grid.
func NewComplex(n int) (*Complex, error) {
	if err := CheckSize(n); err != nil {
		return nil, err
	}
	return &Complex{N: n, Data: make([]complex128, n*n)}, nil
}

// NewReal allocates a zeroed N×N real grid.
func NewReal(n int) (*Real, error) {
	if err := CheckSize(n); err != nil {
		return nil, err
	}
	return &Real{N: n, Data: make([]float64, n*n)}, nil
}

// Index returns the flat index of cell (x, z).
func (g *Complex) Index(x, z int) int { return z*g.N + x }

// At returns the value at (x, z).
func (g *Complex) At(x, z int) complex128 { return g.Data[z*g.N+x] }

// Set stores v at (x, z).
func (g *Complex) Set(x, z int, v complex128) { g.Data[z*g.N+x] = v }

// PartnerAt returns the value of the bin holding the negated wave vector.
func (g *Complex) PartnerAt(x, z int) complex128 {
	return g.Data[Partner(z, g.N)*g.N+Partner(x, g.N)]
}

// Clone returns a deep copy.
func (g *Complex) Clone() *Complex {
	out := &Complex{N: g.N, Data: make([]complex128, len(g.Data))}
	copy(out.Data, g.Data)
	return out
}

// Zero clears every cell.
func (g *Complex) Zero() {
	clear(g.Data)
}

// Index returns the flat index of cell (x, z).
func (g *Real) Index(x, z int) int { return z*g.N + x }

// At returns the value at (x, z).
func (g *Real) At(x, z int) float64 { return g.Data[z*g.N+x] }

// Set stores v at (x, z).
func (g *Real) Set(x, z int, v float64) { g.Data[z*g.N+x] = v }

// AtWrap returns the value at (x, z) with periodic wraparound on both axes.
func (g *Real) AtWrap(x, z int) float64 {
	return g.Data[Wrap(z, g.N)*g.N+Wrap(x, g.N)]
}

// Partner returns the index holding the negated frequency of index i in a
// centred spectrum of size n. Index 0 (the Nyquist frequency) and n/2 (DC)
// are their own partners.
func Partner(i, n int) int {
	return (n - i) & (n - 1)
}

// Wrap maps any integer index onto [0, n) periodically.
func Wrap(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}

// IsNyquist reports whether (x, z) lies on the Nyquist row or column of a
// centred spectrum.
func IsNyquist(x, z int) bool {
	return x == 0 || z == 0
}

// DC returns the coordinates of the zero-frequency bin.
func DC(n int) (x, z int) {
	return n / 2, n / 2
}
