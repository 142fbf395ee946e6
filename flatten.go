package stylizer

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Flatten segments buf into roughly regions SLIC superpixels and paints
// every pixel with the mean colour of its superpixel. It returns a new
// buffer; alpha is copied from buf.
func Flatten(buf *PixelBuffer, regions int) *PixelBuffer {
	lab := labPlane(buf)
	labels, n := slicLabels(lab, buf.W, buf.H, regions)

	type mean struct {
		r, g, b float64
		count   int
	}
	means := make([]mean, n)
	for i, lbl := range labels {
		p := buf.Pix[i*4:]
		m := &means[lbl]
		m.r += float64(p[0])
		m.g += float64(p[1])
		m.b += float64(p[2])
		m.count++
	}

	out := newBuffer(buf.W, buf.H)
	for i, lbl := range labels {
		m := means[lbl]
		c := float64(m.count)
		o := i * 4
		out.Pix[o] = clampByte(m.r / c)
		out.Pix[o+1] = clampByte(m.g / c)
		out.Pix[o+2] = clampByte(m.b / c)
		out.Pix[o+3] = buf.Pix[o+3]
	}
	return out
}

// labPlane converts buf to interleaved L,a,b float32 triples.
func labPlane(buf *PixelBuffer) []float32 {
	lab := make([]float32, buf.W*buf.H*3)
	for i := range buf.W * buf.H {
		p := buf.Pix[i*4:]
		l, a, b := colorful.Color{R: float64(p[0]) / 255, G: float64(p[1]) / 255, B: float64(p[2]) / 255}.Lab()
		lab[i*3] = float32(l)
		lab[i*3+1] = float32(a)
		lab[i*3+2] = float32(b)
	}
	return lab
}

// ============ SLIC ============

const (
	slicIterations  = 10
	slicCompactness = 40.0 // Lab distance per grid step
)

type slicCenter struct{ l, a, b, x, y float64 }

// slicLabels assigns every pixel a superpixel label in [0,n) and returns n.
// Labels are connected regions; fragments smaller than a quarter of the
// expected region size are merged into an adjacent region.
func slicLabels(lab []float32, w, h, regions int) ([]int, int) {
	regions = max(regions, 1)
	step := max(int(math.Sqrt(float64(w*h)/float64(regions))), 1)
	centers := seedCenters(lab, w, h, step)

	assign := make([]int, w*h)
	dist := make([]float64, w*h)
	spatialNorm := float64(step)
	for range slicIterations {
		for i := range dist {
			dist[i] = math.MaxFloat64
		}
		for ci, c := range centers {
			x0, x1 := max(int(c.x)-step, 0), min(int(c.x)+step, w)
			y0, y1 := max(int(c.y)-step, 0), min(int(c.y)+step, h)
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					i := y*w + x
					dl := float64(lab[i*3]) - c.l
					da := float64(lab[i*3+1]) - c.a
					db := float64(lab[i*3+2]) - c.b
					dx, dy := float64(x)-c.x, float64(y)-c.y
					dc := (dl*dl + da*da + db*db) / (slicCompactness * slicCompactness)
					ds := (dx*dx + dy*dy) / (spatialNorm * spatialNorm)
					if d := dc + ds; d < dist[i] {
						dist[i] = d
						assign[i] = ci
					}
				}
			}
		}
		recenter(centers, lab, assign, dist, w)
	}
	return enforceConnectivity(assign, w, h, len(centers))
}

// seedCenters places centres on a regular grid, nudged to the lowest
// gradient position in their 3x3 neighbourhood.
func seedCenters(lab []float32, w, h, step int) []slicCenter {
	var centers []slicCenter
	for cy := step / 2; cy < h; cy += step {
		for cx := step / 2; cx < w; cx += step {
			bx, by := cx, cy
			best := math.MaxFloat64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					x, y := cx+dx, cy+dy
					if x < 0 || x >= w-1 || y < 0 || y >= h-1 {
						continue
					}
					l := float64(lab[(y*w+x)*3])
					grad := math.Abs(float64(lab[((y+1)*w+x)*3])-l) + math.Abs(float64(lab[(y*w+x+1)*3])-l)
					if grad < best {
						best = grad
						bx, by = x, y
					}
				}
			}
			i := (by*w + bx) * 3
			centers = append(centers, slicCenter{
				float64(lab[i]), float64(lab[i+1]), float64(lab[i+2]),
				float64(bx), float64(by),
			})
		}
	}
	if len(centers) == 0 {
		i := ((h/2)*w + w/2) * 3
		centers = append(centers, slicCenter{
			float64(lab[i]), float64(lab[i+1]), float64(lab[i+2]),
			float64(w / 2), float64(h / 2),
		})
	}
	return centers
}

func recenter(centers []slicCenter, lab []float32, assign []int, dist []float64, w int) {
	sums := make([]slicCenter, len(centers))
	counts := make([]int, len(centers))
	for i, ci := range assign {
		if dist[i] == math.MaxFloat64 {
			continue
		}
		s := &sums[ci]
		s.l += float64(lab[i*3])
		s.a += float64(lab[i*3+1])
		s.b += float64(lab[i*3+2])
		s.x += float64(i % w)
		s.y += float64(i / w)
		counts[ci]++
	}
	for ci, n := range counts {
		if n == 0 {
			continue
		}
		f := float64(n)
		s := sums[ci]
		centers[ci] = slicCenter{s.l / f, s.a / f, s.b / f, s.x / f, s.y / f}
	}
}

func enforceConnectivity(assign []int, w, h, numCenters int) ([]int, int) {
	minSize := max(w*h/max(numCenters, 1), 1) / 4
	labels := make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}
	dx4 := [4]int{-1, 0, 1, 0}
	dy4 := [4]int{0, -1, 0, 1}

	next := 0
	queue := make([]int, 0, 256)
	for start := range labels {
		if labels[start] >= 0 {
			continue
		}
		sx, sy := start%w, start/w
		// Label of an already visited 4-neighbour, used if this region is too small.
		adjacent := -1
		for k := range 4 {
			nx, ny := sx+dx4[k], sy+dy4[k]
			if nx >= 0 && nx < w && ny >= 0 && ny < h && labels[ny*w+nx] >= 0 {
				adjacent = labels[ny*w+nx]
				break
			}
		}

		queue = append(queue[:0], start)
		labels[start] = next
		for q := 0; q < len(queue); q++ {
			cur := queue[q]
			cx, cy := cur%w, cur/w
			for k := range 4 {
				nx, ny := cx+dx4[k], cy+dy4[k]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if labels[ni] == -1 && assign[ni] == assign[cur] {
					labels[ni] = next
					queue = append(queue, ni)
				}
			}
		}
		if len(queue) <= minSize && adjacent >= 0 {
			for _, i := range queue {
				labels[i] = adjacent
			}
			continue
		}
		next++
	}
	return labels, next
}
