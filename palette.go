package stylizer

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MapToPalette replaces every pixel's RGB in place with the perceptually
// nearest palette colour (CIE Lab distance). Alpha is untouched.
func MapToPalette(buf *PixelBuffer, palette []colorful.Color) error {
	if len(palette) == 0 {
		return invalidf("empty palette")
	}
	type entry struct {
		lab     [3]float64
		r, g, b uint8
	}
	entries := make([]entry, len(palette))
	for i, c := range palette {
		c = c.Clamped()
		l, a, b := c.Lab()
		r, g, bl := c.RGB255()
		entries[i] = entry{lab: [3]float64{l, a, b}, r: r, g: g, b: bl}
	}

	// Photos repeat colours heavily; remember the answer per RGB triple.
	nearest := make(map[uint32]int, 4096)
	pix := buf.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		key := uint32(pix[i])<<16 | uint32(pix[i+1])<<8 | uint32(pix[i+2])
		best, ok := nearest[key]
		if !ok {
			c := colorful.Color{R: float64(pix[i]) / 255, G: float64(pix[i+1]) / 255, B: float64(pix[i+2]) / 255}
			l, a, b := c.Lab()
			bestD := math.MaxFloat64
			for j, e := range entries {
				d0, d1, d2 := l-e.lab[0], a-e.lab[1], b-e.lab[2]
				if d := d0*d0 + d1*d1 + d2*d2; d < bestD {
					bestD = d
					best = j
				}
			}
			nearest[key] = best
		}
		e := entries[best]
		pix[i], pix[i+1], pix[i+2] = e.r, e.g, e.b
	}
	return nil
}
