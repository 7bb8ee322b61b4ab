package ocean

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/pthm-cable/swell/grid"
)

const hermitianTol = 1e-9

// assertHermitian checks g(-k) == conj(g(k)) for every bin.
func assertHermitian(t *testing.T, name string, g *grid.Complex) {
	t.Helper()
	scale := 1.0
	for _, v := range g.Data {
		scale = math.Max(scale, cmplx.Abs(v))
	}
	for z := 0; z < g.N; z++ {
		for x := 0; x < g.N; x++ {
			v := g.At(x, z)
			p := g.PartnerAt(x, z)
			if cmplx.Abs(v-cmplx.Conj(p)) > hermitianTol*scale {
				t.Fatalf("%s: bin (%d,%d) = %v, partner = %v: not Hermitian", name, x, z, v, p)
			}
		}
	}
}

func testSpectrumParams() SpectrumParams {
	return SpectrumParams{
		Wind:           [2]float64{5, 0},
		PhillipsFactor: 1,
		PatchLength:    64,
		Gravity:        9.81,
		MinWavenumber:  1e-6,
		DampingLength:  0.001 * 8,
	}
}

func testParams(n int) Params {
	return Params{
		Size:            n,
		PatchScale:      64 / float64(n),
		Wind:            [2]float64{5, 0},
		PhillipsFactor:  1,
		Seed:            1234,
		Gravity:         9.81,
		MinWavenumber:   1e-6,
		DampingFraction: 0.001,
		HeightScale:     1,
		XZFactor:        1,
		BubbleScale:     1,
		BubbleThreshold: 1,
		TimeScale:       1,
	}
}

func mustGaussian(t *testing.T, n int, seed uint64) *grid.Complex {
	t.Helper()
	g, err := GenerateGaussian(n, seed)
	if err != nil {
		t.Fatalf("GenerateGaussian(%d): %v", n, err)
	}
	return g
}
