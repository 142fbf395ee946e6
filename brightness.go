package stylizer

// Brighten scales R, G and B by factor in place, saturating at 255.
// Alpha is untouched.
func Brighten(buf *PixelBuffer, factor float64) {
	if factor == 1 {
		return
	}
	pix := buf.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = clampByte(float64(pix[i]) * factor)
		pix[i+1] = clampByte(float64(pix[i+1]) * factor)
		pix[i+2] = clampByte(float64(pix[i+2]) * factor)
	}
}
