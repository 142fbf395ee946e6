package stylizer

// edgeFullStrength is the edge value at which an outline reaches full darkness.
const edgeFullStrength = 100.0

// CompositeEdges darkens buf in place wherever edges exceeds the preset
// threshold for intensity.
func CompositeEdges(buf *PixelBuffer, edges *EdgeMap, intensity float64) error {
	return CompositeEdgesWith(buf, edges, EdgeThresholdFor(intensity), defaultDarken)
}

// CompositeEdgesWith multiplies the RGB of every pixel whose edge value is
// above threshold by 1 - min(1, edge/100)*darken. Pixels at or below the
// threshold are untouched.
func CompositeEdgesWith(buf *PixelBuffer, edges *EdgeMap, threshold, darken float64) error {
	if edges == nil || !buf.SameSize(edges.PixelBuffer) {
		return invalidf("edge map does not match %dx%d buffer", buf.W, buf.H)
	}
	pix := buf.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		e := float64(edges.Pix[i])
		if e <= threshold {
			continue
		}
		k := 1 - min(1, e/edgeFullStrength)*darken
		pix[i] = clampByte(float64(pix[i]) * k)
		pix[i+1] = clampByte(float64(pix[i+1]) * k)
		pix[i+2] = clampByte(float64(pix[i+2]) * k)
	}
	return nil
}
