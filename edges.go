package stylizer

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const edgeBoost = 1.5

var (
	sobelX = mat.NewDense(3, 3, []float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	})
	sobelY = mat.NewDense(3, 3, []float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	})
)

// DetectEdges returns the Sobel gradient magnitude of buf's luma as a new
// EdgeMap, scaled by 1.5 and clamped to 255. The outermost row and column
// on every side stay zero.
func DetectEdges(buf *PixelBuffer) *EdgeMap {
	return detectEdges(buf, DefaultOptions().Workers)
}

func detectEdges(buf *PixelBuffer, workers int) *EdgeMap {
	w, h := buf.W, buf.H
	out := newBuffer(w, h)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}
	if w < 3 || h < 3 {
		return &EdgeMap{out}
	}

	luma := make([]float64, w*h)
	for i := range luma {
		p := buf.Pix[i*4:]
		luma[i] = Luma(p[0], p[1], p[2])
	}

	kx := sobelX.RawMatrix().Data
	ky := sobelY.RawMatrix().Data
	forEachRowBand(h-2, workers, func(b0, b1 int) {
		for y := b0 + 1; y < b1+1; y++ {
			for x := 1; x < w-1; x++ {
				var gx, gy float64
				for j := range 3 {
					row := (y+j-1)*w + x - 1
					for i := range 3 {
						v := luma[row+i]
						gx += kx[j*3+i] * v
						gy += ky[j*3+i] * v
					}
				}
				e := clampByte(math.Sqrt(gx*gx+gy*gy) * edgeBoost)
				o := out.Offset(x, y)
				out.Pix[o], out.Pix[o+1], out.Pix[o+2] = e, e, e
			}
		}
	})
	return &EdgeMap{out}
}

// Luma returns the Rec. 601 weighted brightness of an RGB triple.
func Luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
