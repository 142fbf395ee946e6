package utils

import (
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/samber/lo"
	"github.com/setanarut/stylizer"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts the names returned by String.
func ParsePaletteMethod(name string) (PaletteMethod, bool) {
	switch name {
	case "kmeans":
		return PaletteMethodKMeans, true
	case "dominantcolor", "dominant":
		return PaletteMethodDominantColor, true
	}
	return 0, false
}

type weightedColor struct {
	col    colorful.Color
	weight float64
}

// ExtractPalette picks k representative colours from buf. K-means falls back
// to the dominant-colour method if it cannot produce a palette.
func ExtractPalette(buf *stylizer.PixelBuffer, k int, method PaletteMethod) []colorful.Color {
	if method == PaletteMethodKMeans {
		if p := kmeansPalette(buf, k); len(p) > 0 {
			return p
		}
		stylizer.Logger().Warn("kmeans palette empty, falling back", "method", PaletteMethodDominantColor)
	}
	return dominantPalette(buf, k)
}

// SortPaletteByLuma orders colours from darkest to brightest.
func SortPaletteByLuma(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ra, ga, ba := a.RGB255()
		rb, gb, bb := b.RGB255()
		la, lb := stylizer.Luma(ra, ga, ba), stylizer.Luma(rb, gb, bb)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	})
}

func dominantPalette(buf *stylizer.PixelBuffer, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	found := dominantcolor.FindWeight(buf.NRGBA(), max(24, k*8))
	if len(found) == 0 {
		found = []dominantcolor.Color{{RGBA: color.RGBA{R: 128, G: 128, B: 128, A: 255}, Weight: 1}}
	}
	cands := lo.Map(found, func(c dominantcolor.Color, _ int) weightedColor {
		col, _ := colorful.MakeColor(c.RGBA)
		return weightedColor{col: col, weight: c.Weight}
	})
	return spreadPalette(cands, k)
}

// kmeansSamples caps the observations handed to k-means.
const kmeansSamples = 12000

func kmeansPalette(buf *stylizer.PixelBuffer, k int) []colorful.Color {
	if k <= 0 || buf.W == 0 || buf.H == 0 {
		return nil
	}
	stride := 1
	if n := buf.W * buf.H; n > kmeansSamples {
		stride = int(math.Sqrt(float64(n)/kmeansSamples)) + 1
	}

	obs := make(clusters.Observations, 0, min(buf.W*buf.H, kmeansSamples))
	for y := 0; y < buf.H; y += stride {
		for x := 0; x < buf.W; x += stride {
			p := buf.Pix[buf.Offset(x, y):]
			if p[3] == 0 {
				continue
			}
			obs = append(obs, clusters.Coordinates{float64(p[0]) / 255, float64(p[1]) / 255, float64(p[2]) / 255})
		}
	}
	if len(obs) == 0 {
		return nil
	}

	// Over-cluster, then let spreadPalette keep the k most distinct centres.
	groups, err := kmeans.New().Partition(obs, min(max(k*4, k+2), len(obs)))
	if err != nil {
		return nil
	}
	cands := make([]weightedColor, 0, len(groups))
	for _, g := range groups {
		if len(g.Center) < 3 || len(g.Observations) == 0 {
			continue
		}
		cands = append(cands, weightedColor{
			col:    colorful.Color{R: g.Center[0], G: g.Center[1], B: g.Center[2]},
			weight: float64(len(g.Observations)),
		})
	}
	return spreadPalette(cands, k)
}

// spreadPalette greedily picks k candidates, starting with the heaviest and
// then repeatedly taking the one farthest (in Lab) from everything picked so
// far, with heavier candidates favoured.
func spreadPalette(cands []weightedColor, k int) []colorful.Color {
	k = min(k, len(cands))
	if k <= 0 {
		return nil
	}
	labs := make([][3]float64, len(cands))
	maxW := 1e-6
	for i := range cands {
		cands[i].col = cands[i].col.Clamped()
		cands[i].weight = max(cands[i].weight, 1e-6)
		l, a, b := cands[i].col.Lab()
		labs[i] = [3]float64{l, a, b}
		maxW = max(maxW, cands[i].weight)
	}

	first := 0
	for i, c := range cands {
		if c.weight > cands[first].weight {
			first = i
		}
	}
	picked := []int{first}
	taken := make([]bool, len(cands))
	taken[first] = true
	nearest := make([]float64, len(cands))
	for i := range nearest {
		nearest[i] = math.MaxFloat64
	}

	for len(picked) < k {
		last := labs[picked[len(picked)-1]]
		best, bestScore := -1, -1.0
		for i := range cands {
			if taken[i] {
				continue
			}
			d0, d1, d2 := labs[i][0]-last[0], labs[i][1]-last[1], labs[i][2]-last[2]
			nearest[i] = min(nearest[i], d0*d0+d1*d1+d2*d2)
			score := math.Sqrt(nearest[i]) * (0.55 + 0.45*math.Sqrt(cands[i].weight/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		picked = append(picked, best)
	}
	return lo.Map(picked, func(i int, _ int) colorful.Color { return cands[i].col })
}

// PaletteSwatch renders palette as a row of tileSize squares.
func PaletteSwatch(palette []colorful.Color, tileSize int) (*stylizer.PixelBuffer, error) {
	if tileSize <= 0 {
		tileSize = 64
	}
	buf, err := stylizer.NewPixelBuffer(tileSize*len(palette), tileSize)
	if err != nil {
		return nil, err
	}
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		for y := range tileSize {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				o := buf.Offset(x, y)
				buf.Pix[o], buf.Pix[o+1], buf.Pix[o+2], buf.Pix[o+3] = r, g, b, 255
			}
		}
	}
	return buf, nil
}
