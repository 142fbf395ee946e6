package stylizer

// Enhance boosts saturation and lightness in place:
//
//	s' = min(1, s*(1.3+0.4*intensity))
//	l' = min(0.95, l*(1+0.08*intensity))
//
// Lightness is capped below white so highlights keep some colour.
func Enhance(buf *PixelBuffer, intensity float64) {
	satGain := 1.3 + intensity*0.4
	lightGain := 1 + intensity*0.08
	pix := buf.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		c := RGBToHSL(pix[i], pix[i+1], pix[i+2])
		c.S = min(1, c.S*satGain)
		c.L = min(0.95, c.L*lightGain)
		pix[i], pix[i+1], pix[i+2] = c.RGB()
	}
}
