package stylizer

import (
	"fmt"
	"image"
	"time"
)

// Pipeline is a fixed, ordered list of stages. It has no branches: every
// stage runs once, in order, or the whole invocation fails.
type Pipeline struct {
	Name    string
	Stages  []Stage
	Options Options
}

func NewPipeline(name string, opts Options, stages ...Stage) *Pipeline {
	return &Pipeline{Name: name, Stages: stages, Options: opts}
}

// Validate checks every stage's parameters and that each stage reading an
// edge map has one produced by an earlier stage.
func (p *Pipeline) Validate() error {
	if len(p.Stages) == 0 {
		return invalidf("pipeline %q has no stages", p.Name)
	}
	haveEdges := false
	for _, s := range p.Stages {
		if err := s.Validate(); err != nil {
			return &StageError{Pipeline: p.Name, Stage: s.Name(), Err: err}
		}
		if _, ok := s.(edgeProducer); ok {
			haveEdges = true
		}
		if _, ok := s.(edgeConsumer); ok && !haveEdges {
			return &StageError{Pipeline: p.Name, Stage: s.Name(), Err: invalidf("no edge map computed before use")}
		}
	}
	return nil
}

// Apply runs the pipeline on src and returns the resulting buffer.
//
// Apply takes ownership of src: in-place stages may modify it, so callers
// must use the returned buffer and treat src as consumed. On error the
// returned buffer is nil; no partially stylized result is ever returned.
func (p *Pipeline) Apply(src *PixelBuffer) (*PixelBuffer, error) {
	log := Logger().With("pipeline", p.Name)
	if err := src.valid(); err != nil {
		log.Warn("rejected input", "error", err)
		return nil, err
	}
	if limit := p.Options.MaxPixels; limit > 0 && src.W*src.H > limit {
		err := fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrSurfaceUnavailable, src.W, src.H, limit)
		log.Warn("rejected input", "error", err)
		return nil, err
	}
	if err := p.Validate(); err != nil {
		log.Warn("rejected parameters", "error", err)
		return nil, err
	}

	f := &Frame{Image: src, workers: p.Options.workers()}
	start := time.Now()
	for _, s := range p.Stages {
		t := time.Now()
		if err := s.Apply(f); err != nil {
			log.Warn("stage failed", "stage", s.Name(), "error", err)
			return nil, &StageError{Pipeline: p.Name, Stage: s.Name(), Err: err}
		}
		log.Debug("stage done", "stage", s.Name(), "width", src.W, "height", src.H, "elapsed", time.Since(t))
	}
	log.Debug("pipeline done", "elapsed", time.Since(start))
	return f.Image, nil
}

// ApplyImage converts img, runs the pipeline and returns the result as an
// *image.NRGBA. img itself is never modified.
func (p *Pipeline) ApplyImage(img image.Image) (*image.NRGBA, error) {
	buf, err := PixelBufferFromImage(img)
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(buf)
	if err != nil {
		return nil, err
	}
	return out.NRGBA(), nil
}
