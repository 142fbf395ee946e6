package stylizer

import "math"

// Posterize quantizes each colour channel in place to levels evenly spaced
// values: v' = floor(v/step)*step + step/2 with step = 256/levels.
func Posterize(buf *PixelBuffer, levels int) error {
	if levels < 2 {
		return invalidf("quantization levels %d < 2", levels)
	}
	var lut [256]uint8
	step := 256 / float64(levels)
	for v := range lut {
		bucket := math.Floor(float64(v) / step)
		lut[v] = clampByte(bucket*step + step/2)
	}
	pix := buf.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = lut[pix[i]]
		pix[i+1] = lut[pix[i+1]]
		pix[i+2] = lut[pix[i+2]]
	}
	return nil
}
