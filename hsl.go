package stylizer

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSLColor holds hue, saturation and lightness, each normalized to [0,1].
// H is circular and wraps at 1.
type HSLColor struct {
	H, S, L float64
}

// RGBToHSL converts an 8-bit RGB triple.
func RGBToHSL(r, g, b uint8) HSLColor {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()
	return HSLColor{H: h / 360, S: s, L: l}
}

// HSLToRGB converts back to 8-bit RGB. Out-of-range S and L are clamped,
// H wraps.
func HSLToRGB(h, s, l float64) (r, g, b uint8) {
	h -= math.Floor(h)
	s = max(0, min(1, s))
	l = max(0, min(1, l))
	return colorful.Hsl(h*360, s, l).Clamped().RGB255()
}

// RGB converts c back to 8-bit RGB.
func (c HSLColor) RGB() (r, g, b uint8) {
	return HSLToRGB(c.H, c.S, c.L)
}
