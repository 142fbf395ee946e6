package stylizer

import (
	"testing"
)

func TestDetectEdgesUniformIsZero(t *testing.T) {
	e := DetectEdges(solid(t, 10, 8, 37, 150, 220, 255))
	for y := range e.H {
		for x := range e.W {
			if s := e.Strength(x, y); s != 0 {
				t.Fatalf("Strength(%d,%d) = %d, want 0", x, y, s)
			}
			if a := e.Pix[e.Offset(x, y)+3]; a != 255 {
				t.Fatalf("alpha at (%d,%d) = %d, want 255", x, y, a)
			}
		}
	}
}

func TestDetectEdgesVerticalBoundary(t *testing.T) {
	src := splitVertical(t, 8, 5, [3]uint8{255, 255, 255}, [3]uint8{0, 0, 0})
	e := DetectEdges(src)
	for y := range e.H {
		for x := range e.W {
			want := uint8(0)
			interior := y > 0 && y < e.H-1 && x > 0 && x < e.W-1
			if interior && (x == 3 || x == 4) {
				want = 255
			}
			if got := e.Strength(x, y); got != want {
				t.Errorf("Strength(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestDetectEdgesChannelsEqual(t *testing.T) {
	e := DetectEdges(noise(t, 15, 13, 7))
	for i := 0; i < len(e.Pix); i += 4 {
		if e.Pix[i] != e.Pix[i+1] || e.Pix[i] != e.Pix[i+2] || e.Pix[i+3] != 255 {
			t.Fatalf("pixel %d = %v, want equal RGB and opaque alpha", i/4, e.Pix[i:i+4])
		}
	}
}

func TestDetectEdgesBorderUntouched(t *testing.T) {
	e := DetectEdges(noise(t, 9, 6, 8))
	for x := range e.W {
		if e.Strength(x, 0) != 0 || e.Strength(x, e.H-1) != 0 {
			t.Fatalf("border row non-zero at column %d", x)
		}
	}
	for y := range e.H {
		if e.Strength(0, y) != 0 || e.Strength(e.W-1, y) != 0 {
			t.Fatalf("border column non-zero at row %d", y)
		}
	}
}

func TestDetectEdgesGentleGradientScaled(t *testing.T) {
	// Luma rises 10 per column: gx = 4*20 = 80, magnitude 80*1.5 = 120.
	src := solid(t, 6, 4, 0, 0, 0, 255)
	for y := range src.H {
		for x := range src.W {
			v := uint8(10 * x)
			o := src.Offset(x, y)
			src.Pix[o], src.Pix[o+1], src.Pix[o+2] = v, v, v
		}
	}
	e := DetectEdges(src)
	if got := e.Strength(2, 1); got != 120 {
		t.Errorf("Strength(2,1) = %d, want 120", got)
	}
}

func TestDetectEdgesTinyBuffer(t *testing.T) {
	e := DetectEdges(noise(t, 2, 2, 9))
	for i := 0; i < len(e.Pix); i += 4 {
		if e.Pix[i] != 0 {
			t.Fatalf("2x2 edge map pixel %d = %d, want 0", i/4, e.Pix[i])
		}
	}
}

func TestDetectEdgesWorkersAgree(t *testing.T) {
	src := noise(t, 33, 90, 10)
	one := detectEdges(src, 1)
	many := detectEdges(src, 6)
	for i := range one.Pix {
		if one.Pix[i] != many.Pix[i] {
			t.Fatalf("byte %d: 1 worker = %d, 6 workers = %d", i, one.Pix[i], many.Pix[i])
		}
	}
}

func BenchmarkDetectEdges(b *testing.B) {
	src := noise(b, 1024, 1024, 11)
	b.ReportAllocs()
	for b.Loop() {
		DetectEdges(src)
	}
}
