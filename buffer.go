package stylizer

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// PixelBuffer is a flat RGBA image, 8 bits per channel, row-major,
// non-premultiplied alpha. len(Pix) == W*H*4.
type PixelBuffer struct {
	W, H int
	Pix  []uint8
}

// NewPixelBuffer allocates a zeroed buffer. It fails with
// ErrSurfaceUnavailable for empty or unaddressable dimensions.
func NewPixelBuffer(w, h int) (*PixelBuffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSurfaceUnavailable, w, h)
	}
	if w > math.MaxInt/4/h {
		return nil, fmt.Errorf("%w: %dx%d overflows", ErrSurfaceUnavailable, w, h)
	}
	return newBuffer(w, h), nil
}

func newBuffer(w, h int) *PixelBuffer {
	return &PixelBuffer{W: w, H: h, Pix: make([]uint8, w*h*4)}
}

// PixelBufferFromImage copies img into a new buffer with its origin at (0,0).
func PixelBufferFromImage(img image.Image) (*PixelBuffer, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrDecodeFailure)
	}
	b := img.Bounds()
	buf, err := NewPixelBuffer(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	if src, ok := img.(*image.NRGBA); ok && src.Stride == buf.W*4 {
		copy(buf.Pix, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):])
		return buf, nil
	}
	xdraw.Draw(buf.NRGBA(), image.Rect(0, 0, buf.W, buf.H), img, b.Min, xdraw.Src)
	return buf, nil
}

// NRGBA returns an *image.NRGBA sharing the buffer's pixels.
func (p *PixelBuffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    p.Pix,
		Stride: p.W * 4,
		Rect:   image.Rect(0, 0, p.W, p.H),
	}
}

func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.W, p.H)
}

func (p *PixelBuffer) Clone() *PixelBuffer {
	out := newBuffer(p.W, p.H)
	copy(out.Pix, p.Pix)
	return out
}

// Offset returns the index of the R byte of pixel (x,y).
func (p *PixelBuffer) Offset(x, y int) int {
	return (y*p.W + x) * 4
}

func (p *PixelBuffer) SameSize(q *PixelBuffer) bool {
	return q != nil && p.W == q.W && p.H == q.H
}

func (p *PixelBuffer) valid() error {
	if p == nil {
		return invalidf("nil buffer")
	}
	if p.W <= 0 || p.H <= 0 || len(p.Pix) != p.W*p.H*4 {
		return invalidf("buffer %dx%d with %d bytes", p.W, p.H, len(p.Pix))
	}
	return nil
}

// EdgeMap is a PixelBuffer whose R, G and B channels hold the same edge
// strength and whose alpha is 255.
type EdgeMap struct {
	*PixelBuffer
}

// Strength returns the edge value at (x,y).
func (e *EdgeMap) Strength(x, y int) uint8 {
	return e.Pix[e.Offset(x, y)]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampByte rounds to nearest and clamps to [0,255].
func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
