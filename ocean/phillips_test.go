package ocean

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/swell/grid"
)

func TestPhillipsFormula(t *testing.T) {
	p := testSpectrumParams()
	p.DampingLength = 0

	kx, kz := 0.3, 0.4 // |k| = 0.5
	windLen := 25 / 9.81
	kL := 0.5 * windLen
	cos := 0.3 / 0.5
	want := math.Exp(-1/(kL*kL)) / math.Pow(0.5, 4) * cos * cos

	if got := Phillips(kx, kz, p); math.Abs(got-want) > 1e-12*want {
		t.Errorf("Phillips(0.3, 0.4) = %v, want %v", got, want)
	}

	p.PhillipsFactor = 3
	if got := Phillips(kx, kz, p); math.Abs(got-3*want) > 1e-12*want {
		t.Errorf("Phillips with A=3 = %v, want %v", got, 3*want)
	}
}

func TestPhillipsDamping(t *testing.T) {
	p := testSpectrumParams()
	p.DampingLength = 0
	undamped := Phillips(2, 0, p)

	p.DampingLength = 0.5
	damped := Phillips(2, 0, p)

	want := undamped * math.Exp(-4*0.25)
	if math.Abs(damped-want) > 1e-12*undamped {
		t.Errorf("damped = %v, want %v", damped, want)
	}
}

func TestPhillipsWindPolicy(t *testing.T) {
	p := testSpectrumParams()

	with := Phillips(0.5, 0, p)
	against := Phillips(-0.5, 0, p)
	cross := Phillips(0, 0.5, p)

	if with <= 0 {
		t.Fatalf("downwind P = %v, want > 0", with)
	}
	if against != with {
		t.Errorf("squared cosine should admit upwind waves: upwind %v, downwind %v", against, with)
	}
	if cross != 0 {
		t.Errorf("crosswind P = %v, want 0", cross)
	}

	p.SuppressAgainstWind = true
	if got := Phillips(-0.5, 0, p); got != 0 {
		t.Errorf("suppressed upwind P = %v, want 0", got)
	}
	if got := Phillips(0.5, 0, p); got != with {
		t.Errorf("suppression changed downwind P: %v vs %v", got, with)
	}
}

func TestPhillipsBelowMinWavenumber(t *testing.T) {
	p := testSpectrumParams()
	p.MinWavenumber = 0.1
	if got := Phillips(0.05, 0, p); got != 0 {
		t.Errorf("P below min wavenumber = %v, want 0", got)
	}
	if got := Phillips(0, 0, p); got != 0 {
		t.Errorf("P at k=0 = %v, want 0", got)
	}
}

func TestFiniteOr0(t *testing.T) {
	tests := []struct {
		in          float64
		want        float64
		wantClamped bool
	}{
		{1.5, 1.5, false},
		{0, 0, false},
		{5e-324, 5e-324, false}, // denormal passes through
		{-1e-18, 0, true},
		{math.NaN(), 0, true},
		{math.Inf(1), 0, true},
		{math.Inf(-1), 0, true},
	}
	for _, tt := range tests {
		got, clamped := finiteOr0(tt.in)
		if got != tt.want || clamped != tt.wantClamped {
			t.Errorf("finiteOr0(%v) = (%v, %v), want (%v, %v)", tt.in, got, clamped, tt.want, tt.wantClamped)
		}
	}
	// sqrt of a denormal must stay finite
	if v := math.Sqrt(5e-324); math.IsNaN(v) {
		t.Error("sqrt of denormal is NaN")
	}
}

func TestBuildInitialSpectrumDCIsZero(t *testing.T) {
	gauss := mustGaussian(t, 8, 1)
	s, err := BuildInitialSpectrum(gauss, testSpectrumParams())
	if err != nil {
		t.Fatal(err)
	}
	x, z := grid.DC(8)
	if s.H0.At(x, z) != 0 {
		t.Errorf("DC bin = %v, want exactly 0", s.H0.At(x, z))
	}
	if s.Phillips.At(x, z) != 0 {
		t.Errorf("DC Phillips = %v, want 0", s.Phillips.At(x, z))
	}
}

func TestBuildInitialSpectrumAmplitude(t *testing.T) {
	n := 8
	gauss := mustGaussian(t, n, 3)
	p := testSpectrumParams()
	s, err := BuildInitialSpectrum(gauss, p)
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range [][2]int{{5, 4}, {6, 2}, {1, 7}} {
		x, z := c[0], c[1]
		kx, kz := waveVector(x, z, n, p.PatchLength)
		amp := math.Sqrt(Phillips(kx, kz, p)) / math.Sqrt2
		want := gauss.At(x, z) * complex(amp, 0)
		if got := s.H0.At(x, z); math.Abs(real(got)-real(want)) > 1e-12 || math.Abs(imag(got)-imag(want)) > 1e-12 {
			t.Errorf("h0(%d,%d) = %v, want %v", x, z, got, want)
		}
	}
}

func TestBuildInitialSpectrumIdempotent(t *testing.T) {
	gauss := mustGaussian(t, 32, 11)
	p := testSpectrumParams()

	a, err := BuildInitialSpectrum(gauss, p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildInitialSpectrum(gauss, p)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.H0.Data {
		if a.H0.Data[i] != b.H0.Data[i] {
			t.Fatalf("cell %d differs between identical builds", i)
		}
	}
}

func TestBuildInitialSpectrumParallelMatchesSerial(t *testing.T) {
	gauss := mustGaussian(t, 128, 5)
	p := testSpectrumParams()
	p.PatchLength = 256

	serial, err := BuildInitialSpectrum(gauss, p)
	if err != nil {
		t.Fatal(err)
	}

	pool := newWorkerPool(4)
	defer pool.stopWorkers()
	parallel, err := buildInitialSpectrum(pool, gauss, p)
	if err != nil {
		t.Fatal(err)
	}

	for i := range serial.H0.Data {
		if serial.H0.Data[i] != parallel.H0.Data[i] {
			t.Fatalf("cell %d: serial %v, parallel %v", i, serial.H0.Data[i], parallel.H0.Data[i])
		}
	}
	if serial.Clamped != parallel.Clamped {
		t.Errorf("clamped: serial %d, parallel %d", serial.Clamped, parallel.Clamped)
	}
}

func TestBuildInitialSpectrumErrors(t *testing.T) {
	gauss := mustGaussian(t, 8, 1)

	tests := []struct {
		name   string
		mutate func(*SpectrumParams)
	}{
		{"zero wind", func(p *SpectrumParams) { p.Wind = [2]float64{0, 0} }},
		{"zero patch", func(p *SpectrumParams) { p.PatchLength = 0 }},
		{"negative patch", func(p *SpectrumParams) { p.PatchLength = -4 }},
		{"zero gravity", func(p *SpectrumParams) { p.Gravity = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testSpectrumParams()
			tt.mutate(&p)
			_, err := BuildInitialSpectrum(gauss, p)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("error = %v, want ErrConfiguration", err)
			}
		})
	}

	if _, err := BuildInitialSpectrum(nil, testSpectrumParams()); !errors.Is(err, ErrConfiguration) {
		t.Errorf("nil gaussian error = %v, want ErrConfiguration", err)
	}
}
