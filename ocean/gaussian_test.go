package ocean

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateGaussianReproducible(t *testing.T) {
	a := mustGaussian(t, 16, 99)
	b := mustGaussian(t, 16, 99)
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("cell %d differs for identical seeds: %v vs %v", i, a.Data[i], b.Data[i])
		}
	}

	c := mustGaussian(t, 16, 100)
	same := 0
	for i := range a.Data {
		if a.Data[i] == c.Data[i] {
			same++
		}
	}
	if same == len(a.Data) {
		t.Error("different seeds produced identical fields")
	}
}

func TestGenerateGaussianMoments(t *testing.T) {
	g := mustGaussian(t, 128, 7)

	var sum, sumSq float64
	count := 0
	for _, v := range g.Data {
		for _, s := range []float64{real(v), imag(v)} {
			sum += s
			sumSq += s * s
			count++
		}
	}
	mean := sum / float64(count)
	variance := sumSq/float64(count) - mean*mean

	if math.Abs(mean) > 0.02 {
		t.Errorf("mean = %v, want ~0", mean)
	}
	if math.Abs(variance-1) > 0.03 {
		t.Errorf("variance = %v, want ~1", variance)
	}
}

func TestGenerateGaussianRejectsBadSize(t *testing.T) {
	_, err := GenerateGaussian(12, 1)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("GenerateGaussian(12) error = %v, want ErrConfiguration", err)
	}
}
