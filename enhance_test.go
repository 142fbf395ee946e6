package stylizer

import (
	"testing"
)

func TestEnhanceFormula(t *testing.T) {
	buf := solid(t, 1, 1, 200, 100, 50, 255)
	Enhance(buf, 0.5)
	// s 0.6 -> 0.9, l 125/255 -> 130/255 at hue 20°: roughly (242, 92, 17).
	want := [3]int{242, 92, 17}
	for c := range 3 {
		if d := int(buf.Pix[c]) - want[c]; d < -1 || d > 1 {
			t.Errorf("channel %d = %d, want %d±1", c, buf.Pix[c], want[c])
		}
	}
	if buf.Pix[3] != 255 {
		t.Errorf("alpha = %d", buf.Pix[3])
	}
}

func TestEnhanceNeverLowersSaturation(t *testing.T) {
	src := noise(t, 32, 32, 13)
	for _, intensity := range []float64{0, 0.3, 1} {
		buf := src.Clone()
		Enhance(buf, intensity)
		for i := 0; i < len(buf.Pix); i += 4 {
			before := RGBToHSL(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
			after := RGBToHSL(buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2])
			// 8-bit rounding can move saturation of near-grey pixels slightly.
			if after.S < before.S-0.02 {
				t.Fatalf("intensity %v pixel %d: saturation %v -> %v", intensity, i/4, before.S, after.S)
			}
			if after.L > 0.95+1.0/255 {
				t.Fatalf("intensity %v pixel %d: lightness %v above cap", intensity, i/4, after.L)
			}
		}
	}
}

func TestEnhanceCapsWhite(t *testing.T) {
	buf := solid(t, 1, 1, 255, 255, 255, 255)
	Enhance(buf, 1)
	// Lightness 0.95 of a grey is 242.25.
	for c := range 3 {
		if buf.Pix[c] != 242 {
			t.Errorf("channel %d = %d, want 242", c, buf.Pix[c])
		}
	}
}
