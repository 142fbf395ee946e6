package stylizer

import (
	"fmt"
	"image"
)

// Style names a built-in preset.
type Style string

const (
	StyleAnime   Style = "anime"
	StyleCartoon Style = "cartoon"
	StyleManga   Style = "manga"
)

// Styles lists the built-in presets.
func Styles() []Style {
	return []Style{StyleAnime, StyleCartoon, StyleManga}
}

// ParseStyle maps a preset name to a Style.
func ParseStyle(name string) (Style, error) {
	for _, s := range Styles() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown style %q", ErrInvalidParameters, name)
}

// ============ PRESETS ============
//
// Anime detects edges before posterizing so outlines follow the gradients of
// the smoothed photo. Cartoon detects them after posterizing so outlines
// follow the flat colour bands. Keep the two orders as they are.

// AnimePipeline builds the anime preset from p.
func AnimePipeline(p StyleParameters, opts Options) (*Pipeline, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return NewPipeline(string(StyleAnime), opts,
		SmoothStage{Options: smoothOptions(p)},
		EnhanceStage{Intensity: p.Intensity},
		DetectEdgesStage{},
		PosterizeStage{Levels: p.QuantizationLevels},
		CompositeStage{Threshold: p.EdgeThreshold, Darken: p.EdgeDarkenFactor},
		BrightenStage{Factor: p.BrightnessFactor},
	), nil
}

// CartoonPipeline builds the cartoon preset from p.
func CartoonPipeline(p StyleParameters, opts Options) (*Pipeline, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return NewPipeline(string(StyleCartoon), opts,
		SmoothStage{Options: smoothOptions(p)},
		EnhanceStage{Intensity: p.Intensity},
		PosterizeStage{Levels: p.QuantizationLevels},
		DetectEdgesStage{},
		CompositeStage{Threshold: p.EdgeThreshold, Darken: p.EdgeDarkenFactor},
		BrightenStage{Factor: p.BrightnessFactor},
	), nil
}

// MangaPipeline builds the line-art preset: binary luma threshold with every
// strong edge of the original image inked black. Edges are detected first
// because thresholding rewrites the image in place.
func MangaPipeline(opts Options) *Pipeline {
	return NewPipeline(string(StyleManga), opts,
		DetectEdgesStage{},
		ThresholdStage{Cutoff: mangaCutoff},
		InkStage{Threshold: mangaInkThreshold},
	)
}

func smoothOptions(p StyleParameters) BilateralOptions {
	return BilateralOptions{
		Radius:       p.KernelRadius,
		SpatialSigma: defaultSpatialSigma,
		ColorSigma:   p.ColorSigma,
	}
}

// Preset returns the pipeline for style at the given intensity. Cartoon and
// manga use fixed parameters but still reject an out-of-range intensity.
func Preset(style Style, intensity float64, opts Options) (*Pipeline, error) {
	if err := validateIntensity(intensity); err != nil {
		return nil, err
	}
	switch style {
	case StyleAnime:
		return AnimePipeline(AnimeParameters(intensity), opts)
	case StyleCartoon:
		return CartoonPipeline(CartoonParameters(), opts)
	case StyleManga:
		return MangaPipeline(opts), nil
	}
	return nil, fmt.Errorf("%w: unknown style %q", ErrInvalidParameters, style)
}

// Stylize runs a preset over img and returns a new image of the same size.
func Stylize(img image.Image, style Style, intensity float64) (*image.NRGBA, error) {
	var size image.Point
	if img != nil {
		size = img.Bounds().Size()
	}
	p, err := Preset(style, intensity, OptionsFromSize(size))
	if err != nil {
		return nil, err
	}
	return p.ApplyImage(img)
}
