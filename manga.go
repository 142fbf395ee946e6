package stylizer

// Threshold replaces R, G and B in place with 255 where the pixel's luma is
// above cutoff and 0 elsewhere.
func Threshold(buf *PixelBuffer, cutoff float64) {
	pix := buf.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		var v uint8
		if Luma(pix[i], pix[i+1], pix[i+2]) > cutoff {
			v = 255
		}
		pix[i], pix[i+1], pix[i+2] = v, v, v
	}
}

// Ink forces every pixel whose edge value exceeds threshold to black,
// regardless of its current colour.
func Ink(buf *PixelBuffer, edges *EdgeMap, threshold float64) error {
	if edges == nil || !buf.SameSize(edges.PixelBuffer) {
		return invalidf("edge map does not match %dx%d buffer", buf.W, buf.H)
	}
	pix := buf.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if float64(edges.Pix[i]) > threshold {
			pix[i], pix[i+1], pix[i+2] = 0, 0, 0
		}
	}
	return nil
}
