package stylizer

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// BilateralOptions configures the edge-preserving smoother.
type BilateralOptions struct {
	// Neighbourhood half-width. 3 gives the 7x7 window the presets use.
	Radius int
	// Spatial falloff in pixels.
	SpatialSigma float64
	// Colour falloff. Neighbours whose Euclidean RGB distance is large
	// relative to ColorSigma contribute little. Must be > 0.
	ColorSigma float64
	// Goroutines used; see Options.Workers.
	Workers int
}

// BilateralOptionsFor returns the preset smoother configuration for intensity.
func BilateralOptionsFor(intensity float64) BilateralOptions {
	return BilateralOptions{
		Radius:       defaultKernelRadius,
		SpatialSigma: defaultSpatialSigma,
		ColorSigma:   ColorSigmaFor(intensity),
	}
}

func (o BilateralOptions) validate() error {
	if o.Radius < 1 {
		return invalidf("bilateral radius %d < 1", o.Radius)
	}
	if !(o.SpatialSigma > 0) || math.IsInf(o.SpatialSigma, 0) {
		return invalidf("spatial sigma %v must be positive and finite", o.SpatialSigma)
	}
	if !(o.ColorSigma > 0) || math.IsInf(o.ColorSigma, 0) {
		return invalidf("color sigma %v must be positive and finite", o.ColorSigma)
	}
	return nil
}

// Smooth runs the preset bilateral filter and returns a new buffer.
func Smooth(buf *PixelBuffer, intensity float64) (*PixelBuffer, error) {
	if err := validateIntensity(intensity); err != nil {
		return nil, err
	}
	return SmoothWith(buf, BilateralOptionsFor(intensity))
}

// SmoothWith runs a bilateral filter with explicit options and returns a
// new buffer; buf is only read. Out-of-range neighbours are clamped to the
// nearest edge row/column. Alpha is copied from the centre pixel.
func SmoothWith(buf *PixelBuffer, opt BilateralOptions) (*PixelBuffer, error) {
	if err := buf.valid(); err != nil {
		return nil, err
	}
	if err := opt.validate(); err != nil {
		return nil, err
	}
	out := newBuffer(buf.W, buf.H)
	spatial := spatialKernel(opt.Radius, opt.SpatialSigma)
	colorW := colorWeights(opt.ColorSigma)
	workers := opt.Workers
	if workers <= 0 {
		workers = DefaultOptions().Workers
	}
	forEachRowBand(buf.H, workers, func(y0, y1 int) {
		bilateralRows(buf, out, y0, y1, opt.Radius, spatial, colorW)
	})
	return out, nil
}

// spatialKernel returns the (2r+1)x(2r+1) Gaussian weights exp(-d²/2σ²).
func spatialKernel(r int, sigma float64) *mat.Dense {
	size := 2*r + 1
	k := mat.NewDense(size, size, nil)
	denom := 2 * sigma * sigma
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d2 := float64(dx*dx + dy*dy)
			k.Set(dy+r, dx+r, math.Exp(-d2/denom))
		}
	}
	return k
}

// maxColorDist2 is the largest squared RGB distance between two pixels.
const maxColorDist2 = 3 * 255 * 255

// colorLUTCacheSize bounds how many colour sigmas keep a table alive.
const colorLUTCacheSize = 8

var colorLUTs struct {
	sync.Mutex
	m map[float64][]float64
}

// colorWeights returns exp(-sqrt(d2)/2σc) for every integer squared
// distance d2 so the inner loop does no transcendental math. Tables are
// shared between calls and must not be written to.
func colorWeights(sigma float64) []float64 {
	colorLUTs.Lock()
	defer colorLUTs.Unlock()
	if lut, ok := colorLUTs.m[sigma]; ok {
		return lut
	}
	lut := make([]float64, maxColorDist2+1)
	denom := 2 * sigma
	for d2 := range lut {
		lut[d2] = math.Exp(-math.Sqrt(float64(d2)) / denom)
	}
	if colorLUTs.m == nil || len(colorLUTs.m) >= colorLUTCacheSize {
		colorLUTs.m = make(map[float64][]float64, colorLUTCacheSize)
	}
	colorLUTs.m[sigma] = lut
	return lut
}

func bilateralRows(src, dst *PixelBuffer, y0, y1, r int, spatial *mat.Dense, colorW []float64) {
	raw := spatial.RawMatrix()
	kdata, kstride := raw.Data, raw.Stride
	w, h := src.W, src.H
	pix := src.Pix
	for y := y0; y < y1; y++ {
		for x := range w {
			c := src.Offset(x, y)
			cr, cg, cb := int(pix[c]), int(pix[c+1]), int(pix[c+2])
			var sumR, sumG, sumB, sumW float64
			for dy := -r; dy <= r; dy++ {
				ny := clampInt(y+dy, 0, h-1)
				krow := (dy + r) * kstride
				for dx := -r; dx <= r; dx++ {
					nx := clampInt(x+dx, 0, w-1)
					n := src.Offset(nx, ny)
					nr, ng, nb := int(pix[n]), int(pix[n+1]), int(pix[n+2])
					d0, d1, d2 := nr-cr, ng-cg, nb-cb
					wgt := kdata[krow+dx+r] * colorW[d0*d0+d1*d1+d2*d2]
					sumR += wgt * float64(nr)
					sumG += wgt * float64(ng)
					sumB += wgt * float64(nb)
					sumW += wgt
				}
			}
			if sumW < 1e-12 {
				copy(dst.Pix[c:c+4], pix[c:c+4])
				continue
			}
			inv := 1 / sumW
			dst.Pix[c] = clampByte(sumR * inv)
			dst.Pix[c+1] = clampByte(sumG * inv)
			dst.Pix[c+2] = clampByte(sumB * inv)
			dst.Pix[c+3] = pix[c+3]
		}
	}
}
