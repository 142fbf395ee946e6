package utils

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
	"github.com/setanarut/stylizer"
	xdraw "golang.org/x/image/draw"
)

// Upscaler enlarges a buffer by an integer factor. Implementations may be
// remote models; the stylizer core never calls one itself.
type Upscaler interface {
	Upscale(buf *stylizer.PixelBuffer, factor int) (*stylizer.PixelBuffer, error)
}

// ResampleUpscaler is a local Upscaler built from chained 2x cubic passes.
// A 3x request runs two 2x passes and fits the result down with Catmull-Rom.
type ResampleUpscaler struct {
	// Largest output in pixels; zero means no limit.
	MaxPixels int
}

func (u ResampleUpscaler) Upscale(buf *stylizer.PixelBuffer, factor int) (*stylizer.PixelBuffer, error) {
	passes := 0
	switch factor {
	case 2:
		passes = 1
	case 3, 4:
		passes = 2
	default:
		return nil, fmt.Errorf("%w: upscale factor %d not in {2,3,4}", stylizer.ErrInvalidParameters, factor)
	}
	tw, th := buf.W*factor, buf.H*factor
	if u.MaxPixels > 0 && tw*th > u.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d upscale exceeds %d pixels", stylizer.ErrSurfaceUnavailable, tw, th, u.MaxPixels)
	}

	var img image.Image = buf.NRGBA()
	for range passes {
		b := img.Bounds()
		g := gift.New(gift.Resize(b.Dx()*2, b.Dy()*2, gift.CubicResampling))
		dst := image.NewNRGBA(g.Bounds(b))
		g.Draw(dst, img)
		img = dst
	}
	if b := img.Bounds(); b.Dx() != tw || b.Dy() != th {
		dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		img = dst
	}
	return stylizer.PixelBufferFromImage(img)
}
