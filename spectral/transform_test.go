package spectral

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/swell/grid"
)

const tolerance = 1e-9

func TestNewRejectsBadSizes(t *testing.T) {
	for _, n := range []int{0, 2, 6, 100} {
		if _, err := New(n); err == nil {
			t.Errorf("New(%d) succeeded, want error", n)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int{4, 8, 16, 32, 64} {
		tr, err := New(n)
		if err != nil {
			t.Fatalf("New(%d): %v", n, err)
		}

		rng := rand.New(rand.NewSource(int64(n)))
		field := make([]float64, n*n)
		g, _ := grid.NewComplex(n)
		for i := range field {
			field[i] = rng.Float64()*2 - 1
			g.Data[i] = complex(field[i], 0)
		}

		if err := tr.Forward2D(g); err != nil {
			t.Fatalf("Forward2D: %v", err)
		}
		out, _ := grid.NewReal(n)
		res, err := tr.Inverse2D(out, g)
		if err != nil {
			t.Fatalf("Inverse2D: %v", err)
		}

		for i := range field {
			if math.Abs(out.Data[i]-field[i]) > tolerance {
				t.Fatalf("n=%d cell %d: got %v, want %v", n, i, out.Data[i], field[i])
			}
		}
		if res.Relative() > ResidueEpsilon {
			t.Errorf("n=%d: relative residue %v exceeds %v", n, res.Relative(), ResidueEpsilon)
		}
	}
}

func TestForwardOfRealFieldIsHermitian(t *testing.T) {
	n := 16
	tr, _ := New(n)
	g, _ := grid.NewComplex(n)
	rng := rand.New(rand.NewSource(7))
	for i := range g.Data {
		g.Data[i] = complex(rng.NormFloat64(), 0)
	}
	if err := tr.Forward2D(g); err != nil {
		t.Fatal(err)
	}

	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			v := g.At(x, z)
			p := g.PartnerAt(x, z)
			if math.Abs(real(v)-real(p)) > tolerance || math.Abs(imag(v)+imag(p)) > tolerance {
				t.Fatalf("bin (%d,%d) = %v, partner = %v: not conjugate", x, z, v, p)
			}
		}
	}
}

func TestInverseSingleModeIsCosine(t *testing.T) {
	n := 8
	tr, _ := New(n)
	g, _ := grid.NewComplex(n)

	// One wave along +x: bins at kx = ±1 in the centred layout.
	g.Set(n/2+1, n/2, 0.5)
	g.Set(n/2-1, n/2, 0.5)

	out, _ := grid.NewReal(n)
	res, err := tr.Inverse2D(out, g)
	if err != nil {
		t.Fatal(err)
	}

	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			want := math.Cos(2 * math.Pi * float64(x) / float64(n))
			if got := out.At(x, z); math.Abs(got-want) > tolerance {
				t.Errorf("(%d,%d) = %v, want %v", x, z, got, want)
			}
		}
	}
	if res.MaxImag > tolerance {
		t.Errorf("imaginary residue %v for a Hermitian spectrum", res.MaxImag)
	}
}

func TestInverseDCIsConstant(t *testing.T) {
	n := 8
	tr, _ := New(n)
	g, _ := grid.NewComplex(n)
	x, z := grid.DC(n)
	g.Set(x, z, 3)

	out, _ := grid.NewReal(n)
	if _, err := tr.Inverse2D(out, g); err != nil {
		t.Fatal(err)
	}
	for i, v := range out.Data {
		if math.Abs(v-3) > tolerance {
			t.Fatalf("cell %d = %v, want 3", i, v)
		}
	}
}

func TestSizeMismatch(t *testing.T) {
	tr, _ := New(8)
	g, _ := grid.NewComplex(16)
	if err := tr.InverseComplex2D(g); err == nil {
		t.Error("expected size mismatch error")
	}
	if err := tr.Forward2D(g); err == nil {
		t.Error("expected size mismatch error")
	}
	out, _ := grid.NewReal(16)
	if _, err := tr.Inverse2D(out, g); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestResidueRelative(t *testing.T) {
	tests := []struct {
		name string
		r    Residue
		want float64
	}{
		{"zero field", Residue{}, 0},
		{"scaled", Residue{MaxImag: 1e-6, MaxReal: 2}, 5e-7},
		{"imag only", Residue{MaxImag: 0.5}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Relative(); math.Abs(got-tt.want) > 1e-15 {
				t.Errorf("Relative() = %v, want %v", got, tt.want)
			}
		})
	}
}

func BenchmarkInverse2D256(b *testing.B) {
	n := 256
	tr, _ := New(n)
	src, _ := grid.NewComplex(n)
	work, _ := grid.NewComplex(n)
	out, _ := grid.NewReal(n)
	rng := rand.New(rand.NewSource(1))
	for i := range src.Data {
		src.Data[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(work.Data, src.Data)
		tr.Inverse2D(out, work)
	}
}
