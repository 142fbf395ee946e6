package stylizer

import (
	"math/rand/v2"
	"testing"
)

func solid(t testing.TB, w, h int, r, g, b, a uint8) *PixelBuffer {
	t.Helper()
	buf, err := NewPixelBuffer(w, h)
	if err != nil {
		t.Fatalf("NewPixelBuffer(%d, %d): %v", w, h, err)
	}
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = r, g, b, a
	}
	return buf
}

// noise fills a buffer with reproducible random colours and opaque alpha.
func noise(t testing.TB, w, h int, seed uint64) *PixelBuffer {
	t.Helper()
	buf := solid(t, w, h, 0, 0, 0, 255)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = uint8(rng.IntN(256))
		buf.Pix[i+1] = uint8(rng.IntN(256))
		buf.Pix[i+2] = uint8(rng.IntN(256))
	}
	return buf
}

// splitVertical returns a buffer whose columns [0, w/2) are left and the rest right.
func splitVertical(t testing.TB, w, h int, left, right [3]uint8) *PixelBuffer {
	t.Helper()
	buf := solid(t, w, h, 0, 0, 0, 255)
	for y := range h {
		for x := range w {
			c := right
			if x < w/2 {
				c = left
			}
			o := buf.Offset(x, y)
			buf.Pix[o], buf.Pix[o+1], buf.Pix[o+2] = c[0], c[1], c[2]
		}
	}
	return buf
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
