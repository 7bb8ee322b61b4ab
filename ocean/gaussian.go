package ocean

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/swell/grid"
)

// gaussianStream decorrelates the two PCG words derived from one seed.
const gaussianStream = 0x9e3779b97f4a7c15

// GenerateGaussian returns an N×N grid whose real and imaginary parts are
// independent standard normal samples. The same seed always yields the same
// grid.
func GenerateGaussian(n int, seed uint64) (*grid.Complex, error) {
	g, err := grid.NewComplex(n)
	if err != nil {
		return nil, configErr("fft_size", "%v", err)
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(seed, seed^gaussianStream)}
	for i := range g.Data {
		re := normal.Rand()
		im := normal.Rand()
		g.Data[i] = complex(re, im)
	}
	return g, nil
}
