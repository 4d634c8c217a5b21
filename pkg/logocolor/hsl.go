package logocolor

import (
	"github.com/lucasb-eyer/go-colorful"
)

// HSL is a hue/saturation/lightness triple. Hue is a fraction of a full turn
// in [0,1); saturation and lightness are in [0,1].
type HSL struct {
	H float64
	S float64
	L float64
}

// Degrees returns the hue as an angle in [0,360).
func (v HSL) Degrees() float64 {
	return v.H * 360
}

// Achromatic reports whether the value has no saturation (pure gray, black or white).
func (v HSL) Achromatic() bool {
	return v.S == 0
}

// ToHSL converts the red, green and blue channels of p (rescaled from [0,255]
// to [0,1]) with the standard RGB to HSL transform. Alpha is ignored.
func ToHSL(p Pixel) HSL {
	r, g, b := p.RGB()
	c := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}

	h, s, l := c.Hsl()
	if h >= 360 {
		h -= 360
	}
	return HSL{H: h / 360, S: s, L: l}
}
