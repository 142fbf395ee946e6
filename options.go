package stylizer

import (
	"image"
	"math"
	"runtime"
)

// Options controls how a pipeline runs, not what it computes.
type Options struct {
	// Goroutines used by the neighbourhood stages (smoothing, edge detection).
	// Zero or negative means runtime.GOMAXPROCS(0).
	// Output does not depend on this value.
	Workers int
	// Upper bound on width*height for any buffer the pipeline allocates.
	// Larger requests fail with ErrSurfaceUnavailable instead of exhausting memory.
	// Zero disables the check.
	MaxPixels int
}

const defaultMaxPixels = 64 << 20 // 64 megapixels, 256 MiB per buffer

func DefaultOptions() Options {
	return Options{
		Workers:   runtime.GOMAXPROCS(0),
		MaxPixels: defaultMaxPixels,
	}
}

// OptionsFromSize picks a worker count suited to an image of the given size.
// Small images are not worth the fan-out.
func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	pixels := size.X * size.Y
	if pixels <= 128*128 {
		opt.Workers = 1
	} else if pixels <= 512*512 {
		opt.Workers = min(opt.Workers, 4)
	}
	return opt
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

// StyleParameters is the full parameter record of a stylization run.
type StyleParameters struct {
	// Overall strength in [0,1]. Drives saturation/lightness enhancement.
	Intensity float64
	// Smoothing neighbourhood half-width. The presets use 3 (7x7).
	KernelRadius int
	// Colour-similarity falloff of the smoother. Larger values blend across
	// stronger colour differences. Must be > 0.
	ColorSigma float64
	// Posterization bucket count per channel, >= 2.
	QuantizationLevels int
	// Edge strength above which a pixel is treated as outline.
	EdgeThreshold float64
	// How strongly a full-strength outline darkens the underlying colour, in [0,1].
	EdgeDarkenFactor float64
	// Final linear gain, > 0.
	BrightnessFactor float64
}

const (
	defaultKernelRadius = 3
	defaultSpatialSigma = 3.0
	defaultDarken       = 0.7
	mangaCutoff         = 128.0
	mangaInkThreshold   = 30.0
)

// ColorSigmaFor maps a smoothing intensity to the smoother's colour sigma.
func ColorSigmaFor(intensity float64) float64 { return 30 + intensity*50 }

// EdgeThresholdFor maps a compositing intensity to the outline threshold.
// Higher intensity lowers the bar and yields more outlines.
func EdgeThresholdFor(intensity float64) float64 { return 30 - intensity*10 }

// AnimeParameters derives the anime preset from a single intensity.
func AnimeParameters(intensity float64) StyleParameters {
	return StyleParameters{
		Intensity:          intensity,
		KernelRadius:       defaultKernelRadius,
		ColorSigma:         ColorSigmaFor(intensity),
		QuantizationLevels: 6 + int(math.Floor(intensity*4)),
		EdgeThreshold:      EdgeThresholdFor(intensity),
		EdgeDarkenFactor:   defaultDarken,
		BrightnessFactor:   1.05 + intensity*0.1,
	}
}

// CartoonParameters returns the fixed cartoon preset. Smoothing runs at
// intensity 0.5, enhancement at 0.6 and compositing at 0.4.
func CartoonParameters() StyleParameters {
	return StyleParameters{
		Intensity:          0.6,
		KernelRadius:       defaultKernelRadius,
		ColorSigma:         ColorSigmaFor(0.5),
		QuantizationLevels: 8,
		EdgeThreshold:      EdgeThresholdFor(0.4),
		EdgeDarkenFactor:   defaultDarken,
		BrightnessFactor:   1.08,
	}
}

// Validate rejects parameter sets no stage can honour.
func (p StyleParameters) Validate() error {
	if err := validateIntensity(p.Intensity); err != nil {
		return err
	}
	if p.KernelRadius < 1 {
		return invalidf("kernel radius %d < 1", p.KernelRadius)
	}
	if !(p.ColorSigma > 0) || math.IsInf(p.ColorSigma, 0) {
		return invalidf("color sigma %v must be positive and finite", p.ColorSigma)
	}
	if p.QuantizationLevels < 2 {
		return invalidf("quantization levels %d < 2", p.QuantizationLevels)
	}
	if math.IsNaN(p.EdgeThreshold) {
		return invalidf("edge threshold is NaN")
	}
	if !(p.EdgeDarkenFactor >= 0 && p.EdgeDarkenFactor <= 1) {
		return invalidf("edge darken factor %v outside [0,1]", p.EdgeDarkenFactor)
	}
	return validateGain(p.BrightnessFactor)
}

func validateIntensity(v float64) error {
	if !(v >= 0 && v <= 1) {
		return invalidf("intensity %v outside [0,1]", v)
	}
	return nil
}

func validateGain(v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return invalidf("brightness factor %v must be positive and finite", v)
	}
	return nil
}
