package ocean

import (
	"math"
	"math/cmplx"

	"github.com/pthm-cable/swell/grid"
)

// Channel identifies one of the five per-frame spectra.
type Channel int

const (
	ChannelHeight Channel = iota
	ChannelSlopeX
	ChannelSlopeZ
	ChannelDispX
	ChannelDispZ
	numChannels
)

var channelNames = [numChannels]string{"height", "slope_x", "slope_z", "disp_x", "disp_z"}

func (c Channel) String() string {
	if c < 0 || c >= numChannels {
		return "unknown"
	}
	return channelNames[c]
}

// EvolveParams holds the inputs of the time-evolution stage.
type EvolveParams struct {
	PatchLength   float64
	Gravity       float64
	MinWavenumber float64 // bins with |k| below this get no displacement
}

// Spectra holds the five frequency-domain grids of one frame.
type Spectra struct {
	Height *grid.Complex
	SlopeX *grid.Complex
	SlopeZ *grid.Complex
	DispX  *grid.Complex
	DispZ  *grid.Complex
}

// NewSpectra allocates five zeroed N×N spectra.
func NewSpectra(n int) (*Spectra, error) {
	var s Spectra
	for c := Channel(0); c < numChannels; c++ {
		g, err := grid.NewComplex(n)
		if err != nil {
			return nil, configErr("fft_size", "%v", err)
		}
		*s.channel(c) = g
	}
	return &s, nil
}

func (s *Spectra) channel(c Channel) **grid.Complex {
	switch c {
	case ChannelHeight:
		return &s.Height
	case ChannelSlopeX:
		return &s.SlopeX
	case ChannelSlopeZ:
		return &s.SlopeZ
	case ChannelDispX:
		return &s.DispX
	default:
		return &s.DispZ
	}
}

// Channel returns the grid for c.
func (s *Spectra) Channel(c Channel) *grid.Complex {
	return *s.channel(c)
}

// Evolve advances h0 to time t and derives the slope and displacement
// spectra. Calling it twice with the same arguments yields the same grids.
func Evolve(h0 *grid.Complex, p EvolveParams, t float64) (*Spectra, error) {
	if h0 == nil {
		return nil, configErr("initial_spectrum", "is nil")
	}
	s, err := NewSpectra(h0.N)
	if err != nil {
		return nil, err
	}
	evolveInto(nil, s, h0, p, t)
	return s, nil
}

// evolveInto writes the frame spectra for time t into dst.
//
//	H(k,t)  = h0(k)·e^{iωt} + conj(h0(-k))·e^{-iωt}
//	Sx, Sz  = i·kx·H, i·kz·H
//	Dx, Dz  = -i·(kx/|k|)·H, -i·(kz/|k|)·H
//
// On the Nyquist row and column the -k partner aliases onto the same bin, so
// the derivative spectra are zeroed there to stay Hermitian.
func evolveInto(pool *workerPool, dst *Spectra, h0 *grid.Complex, p EvolveParams, t float64) {
	n := h0.N
	height := dst.Height.Data
	slopeX := dst.SlopeX.Data
	slopeZ := dst.SlopeZ.Data
	dispX := dst.DispX.Data
	dispZ := dst.DispZ.Data

	pool.run(n*n, func(start, end int) {
		for i := start; i < end; i++ {
			x, z := i%n, i/n
			kx, kz := waveVector(x, z, n, p.PatchLength)
			k := math.Hypot(kx, kz)

			if k == 0 || k < p.MinWavenumber {
				height[i], slopeX[i], slopeZ[i], dispX[i], dispZ[i] = 0, 0, 0, 0, 0
				continue
			}

			phase := cmplx.Rect(1, dispersion(p.Gravity, k)*t)
			h := h0.Data[i]*phase + cmplx.Conj(h0.PartnerAt(x, z))*cmplx.Conj(phase)
			height[i] = h

			if grid.IsNyquist(x, z) {
				slopeX[i], slopeZ[i], dispX[i], dispZ[i] = 0, 0, 0, 0
				continue
			}

			slopeX[i] = complex(0, kx) * h
			slopeZ[i] = complex(0, kz) * h
			dispX[i] = complex(0, -kx/k) * h
			dispZ[i] = complex(0, -kz/k) * h
		}
	})
}
