package stylizer

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Frame is the state a pipeline threads through its stages. Image is the
// buffer of record; Edges holds the most recent edge map, if any.
type Frame struct {
	Image *PixelBuffer
	Edges *EdgeMap

	workers int
}

// Stage is one step of a pipeline. Validate is called for every stage before
// any stage runs, so a rejected parameter never leaves a half-processed image.
type Stage interface {
	Name() string
	Validate() error
	Apply(f *Frame) error
}

// edgeProducer is implemented by stages that set Frame.Edges.
type edgeProducer interface {
	producesEdges()
}

// edgeConsumer is implemented by stages that read Frame.Edges.
type edgeConsumer interface {
	consumesEdges()
}

// SmoothStage replaces the image with a bilaterally filtered copy.
type SmoothStage struct {
	Options BilateralOptions
}

func (s SmoothStage) Name() string    { return "smooth" }
func (s SmoothStage) Validate() error { return s.Options.validate() }
func (s SmoothStage) Apply(f *Frame) error {
	opt := s.Options
	if opt.Workers <= 0 {
		opt.Workers = f.workers
	}
	out, err := SmoothWith(f.Image, opt)
	if err != nil {
		return err
	}
	f.Image = out
	return nil
}

// EnhanceStage boosts saturation and lightness in place.
type EnhanceStage struct {
	Intensity float64
}

func (s EnhanceStage) Name() string    { return "enhance" }
func (s EnhanceStage) Validate() error { return validateIntensity(s.Intensity) }
func (s EnhanceStage) Apply(f *Frame) error {
	Enhance(f.Image, s.Intensity)
	return nil
}

// DetectEdgesStage computes an edge map from the current image. The image
// itself is left as is.
type DetectEdgesStage struct{}

func (DetectEdgesStage) producesEdges() {}

func (DetectEdgesStage) Name() string    { return "detect-edges" }
func (DetectEdgesStage) Validate() error { return nil }
func (DetectEdgesStage) Apply(f *Frame) error {
	f.Edges = detectEdges(f.Image, f.workers)
	return nil
}

// PosterizeStage quantizes each channel to Levels values.
type PosterizeStage struct {
	Levels int
}

func (s PosterizeStage) Name() string { return "posterize" }
func (s PosterizeStage) Validate() error {
	if s.Levels < 2 {
		return invalidf("quantization levels %d < 2", s.Levels)
	}
	return nil
}
func (s PosterizeStage) Apply(f *Frame) error { return Posterize(f.Image, s.Levels) }

// CompositeStage darkens the image along the frame's edge map.
type CompositeStage struct {
	Threshold float64
	Darken    float64
}

func (CompositeStage) consumesEdges() {}

func (s CompositeStage) Name() string { return "composite-edges" }
func (s CompositeStage) Validate() error {
	if !(s.Darken >= 0 && s.Darken <= 1) {
		return invalidf("edge darken factor %v outside [0,1]", s.Darken)
	}
	if math.IsNaN(s.Threshold) {
		return invalidf("edge threshold is NaN")
	}
	return nil
}
func (s CompositeStage) Apply(f *Frame) error {
	return CompositeEdgesWith(f.Image, f.Edges, s.Threshold, s.Darken)
}

// BrightenStage applies a linear gain to the colour channels.
type BrightenStage struct {
	Factor float64
}

func (s BrightenStage) Name() string    { return "brighten" }
func (s BrightenStage) Validate() error { return validateGain(s.Factor) }
func (s BrightenStage) Apply(f *Frame) error {
	Brighten(f.Image, s.Factor)
	return nil
}

// ThresholdStage turns the image into pure black and white by luma.
type ThresholdStage struct {
	Cutoff float64
}

func (s ThresholdStage) Name() string { return "threshold" }
func (s ThresholdStage) Validate() error {
	if math.IsNaN(s.Cutoff) {
		return invalidf("threshold cutoff is NaN")
	}
	return nil
}
func (s ThresholdStage) Apply(f *Frame) error {
	Threshold(f.Image, s.Cutoff)
	return nil
}

// InkStage forces strong edges to black.
type InkStage struct {
	Threshold float64
}

func (InkStage) consumesEdges() {}

func (s InkStage) Name() string { return "ink" }
func (s InkStage) Validate() error {
	if math.IsNaN(s.Threshold) {
		return invalidf("ink threshold is NaN")
	}
	return nil
}
func (s InkStage) Apply(f *Frame) error {
	return Ink(f.Image, f.Edges, s.Threshold)
}

// PaletteStage maps every pixel to its nearest palette colour.
type PaletteStage struct {
	Palette []colorful.Color
}

func (s PaletteStage) Name() string { return "palette" }
func (s PaletteStage) Validate() error {
	if len(s.Palette) == 0 {
		return invalidf("empty palette")
	}
	return nil
}
func (s PaletteStage) Apply(f *Frame) error { return MapToPalette(f.Image, s.Palette) }

// FlattenStage replaces the image with its superpixel mean colours.
type FlattenStage struct {
	Regions int
}

func (s FlattenStage) Name() string { return "flatten" }
func (s FlattenStage) Validate() error {
	if s.Regions < 1 {
		return invalidf("superpixel count %d < 1", s.Regions)
	}
	return nil
}
func (s FlattenStage) Apply(f *Frame) error {
	f.Image = Flatten(f.Image, s.Regions)
	return nil
}
