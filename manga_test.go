package stylizer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestThreshold(t *testing.T) {
	tests := []struct {
		rgb  [3]uint8
		want uint8
	}{
		{[3]uint8{255, 255, 255}, 255},
		{[3]uint8{0, 0, 0}, 0},
		{[3]uint8{127, 127, 127}, 0},
		{[3]uint8{129, 129, 129}, 255},
		{[3]uint8{255, 0, 0}, 0},   // luma 76
		{[3]uint8{0, 255, 0}, 255}, // luma 150
	}
	for _, tt := range tests {
		buf := solid(t, 1, 1, tt.rgb[0], tt.rgb[1], tt.rgb[2], 42)
		Threshold(buf, 128)
		if buf.Pix[0] != tt.want || buf.Pix[1] != tt.want || buf.Pix[2] != tt.want || buf.Pix[3] != 42 {
			t.Errorf("Threshold(%v) = %v, want %d", tt.rgb, buf.Pix, tt.want)
		}
	}
}

func TestMangaIdempotentOnFlatBlackAndWhite(t *testing.T) {
	for _, v := range []uint8{0, 255} {
		src := solid(t, 6, 5, v, v, v, 255)
		want := src.Clone()
		got, err := MangaPipeline(DefaultOptions()).Apply(src)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want.Pix, got.Pix); diff != "" {
			t.Errorf("manga on flat %d changed pixels (-want +got):\n%s", v, diff)
		}
	}
}

func TestMangaVerticalBoundary(t *testing.T) {
	src := splitVertical(t, 8, 6, [3]uint8{255, 255, 255}, [3]uint8{0, 0, 0})
	edges := DetectEdges(src)
	got, err := MangaPipeline(DefaultOptions()).Apply(src.Clone())
	if err != nil {
		t.Fatal(err)
	}
	for y := range got.H {
		for x := range got.W {
			want := uint8(0)
			if x < 4 {
				want = 255
			}
			if edges.Strength(x, y) > 30 {
				want = 0
			}
			if v := got.Pix[got.Offset(x, y)]; v != want {
				t.Errorf("(%d,%d) = %d, want %d", x, y, v, want)
			}
		}
	}
	// The white column touching the boundary is inked on interior rows only.
	if got.Pix[got.Offset(3, 0)] != 255 || got.Pix[got.Offset(3, 2)] != 0 {
		t.Errorf("column 3: border row %d, interior row %d", got.Pix[got.Offset(3, 0)], got.Pix[got.Offset(3, 2)])
	}
}

func TestInkSizeMismatch(t *testing.T) {
	buf := solid(t, 2, 2, 0, 0, 0, 255)
	if err := Ink(buf, &EdgeMap{solid(t, 3, 2, 0, 0, 0, 255)}, 30); err == nil {
		t.Error("Ink accepted a mismatched edge map")
	}
}
