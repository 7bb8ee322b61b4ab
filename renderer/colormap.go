package renderer

import "image/color"

// heightColor maps a normalised height in [0, 1] to a sea gradient:
// deep blue -> blue -> cyan -> white.
func heightColor(v float32) color.RGBA {
	v = clamp01(v)
	var r, g, b uint8
	if v < 0.25 {
		t := v / 0.25
		r = uint8(5 + t*15)
		g = uint8(15 + t*45)
		b = uint8(50 + t*80)
	} else if v < 0.5 {
		t := (v - 0.25) / 0.25
		r = uint8(20 + t*20)
		g = uint8(60 + t*80)
		b = uint8(130 + t*60)
	} else if v < 0.75 {
		t := (v - 0.5) / 0.25
		r = uint8(40 + t*60)
		g = uint8(140 + t*70)
		b = uint8(190 + t*40)
	} else {
		t := (v - 0.75) / 0.25
		r = uint8(100 + t*155)
		g = uint8(210 + t*45)
		b = uint8(230 + t*25)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// foamColor blends water into white by foam intensity.
func foamColor(f float32) color.RGBA {
	f = clamp01(f)
	return color.RGBA{
		R: uint8(20 + f*235),
		G: uint8(60 + f*195),
		B: uint8(110 + f*145),
		A: 255,
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// normalize maps v from [-extent, extent] onto [0, 1].
func normalize(v, extent float32) float32 {
	if extent <= 0 {
		return 0.5
	}
	return 0.5 + 0.5*v/extent
}
