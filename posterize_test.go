package stylizer

import (
	"errors"
	"math"
	"testing"
)

func gradient(t *testing.T) *PixelBuffer {
	t.Helper()
	buf := solid(t, 256, 1, 0, 0, 0, 255)
	for x := range 256 {
		o := buf.Offset(x, 0)
		buf.Pix[o], buf.Pix[o+1], buf.Pix[o+2] = uint8(x), uint8(255-x), uint8(x/2)
	}
	return buf
}

func TestPosterizeLevels(t *testing.T) {
	for levels := 2; levels <= 16; levels++ {
		buf := gradient(t)
		if err := Posterize(buf, levels); err != nil {
			t.Fatalf("Posterize(%d): %v", levels, err)
		}
		step := 256 / float64(levels)
		allowed := map[uint8]bool{}
		for b := range levels {
			allowed[uint8(math.Round(float64(b)*step+step/2))] = true
		}
		for c := range 3 {
			seen := map[uint8]bool{}
			for i := c; i < len(buf.Pix); i += 4 {
				v := buf.Pix[i]
				if !allowed[v] {
					t.Fatalf("levels %d: value %d is not a bucket centre", levels, v)
				}
				seen[v] = true
			}
			if len(seen) > levels {
				t.Errorf("levels %d channel %d: %d distinct values", levels, c, len(seen))
			}
		}
	}
}

func TestPosterizeEightLevels(t *testing.T) {
	buf := solid(t, 1, 1, 0, 0, 0, 77)
	tests := []struct{ in, want uint8 }{
		{0, 16}, {31, 16}, {32, 48}, {100, 112}, {200, 208}, {255, 240},
	}
	for _, tt := range tests {
		buf.Pix[0], buf.Pix[1], buf.Pix[2] = tt.in, tt.in, tt.in
		if err := Posterize(buf, 8); err != nil {
			t.Fatal(err)
		}
		if buf.Pix[0] != tt.want {
			t.Errorf("Posterize(%d, 8) = %d, want %d", tt.in, buf.Pix[0], tt.want)
		}
		if buf.Pix[3] != 77 {
			t.Errorf("alpha changed to %d", buf.Pix[3])
		}
	}
}

func TestPosterizeRejectsFewLevels(t *testing.T) {
	buf := solid(t, 2, 2, 10, 20, 30, 255)
	for _, levels := range []int{1, 0, -4} {
		if err := Posterize(buf, levels); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("Posterize(%d) error = %v, want ErrInvalidParameters", levels, err)
		}
	}
	if buf.Pix[0] != 10 || buf.Pix[1] != 20 || buf.Pix[2] != 30 {
		t.Errorf("rejected call modified buffer: %v", buf.Pix[:4])
	}
}
