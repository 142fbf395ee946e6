package stylizer

import (
	"golang.org/x/sync/errgroup"
)

// minRowsPerBand keeps tiny bands from costing more in scheduling than work.
const minRowsPerBand = 16

// forEachRowBand splits [0,h) into contiguous bands and runs fn on each,
// at most workers at a time. fn must only write rows inside its band.
func forEachRowBand(h, workers int, fn func(y0, y1 int)) {
	if workers <= 1 || h <= minRowsPerBand {
		fn(0, h)
		return
	}
	bands := min(workers*4, (h+minRowsPerBand-1)/minRowsPerBand)
	rows := (h + bands - 1) / bands

	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < h; y0 += rows {
		y1 := min(y0+rows, h)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	_ = g.Wait()
}
