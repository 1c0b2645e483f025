// Package preprocess holds the deterministic transform stages that sit in
// front of the estimator. Stages are stateless: Fit is a no-op and
// Transform cannot fail.
package preprocess

import (
	"github.com/okian/ctcpredict/internal/domain/frame"
)

// Transformer is one stage of the preprocessing pipeline.
type Transformer interface {
	Name() string
	Fit(f *frame.Frame) error
	Transform(f *frame.Frame) *frame.Frame
}

// Pipeline applies its stages strictly in sequence.
type Pipeline struct {
	steps []Transformer
}

// NewPipeline chains the given stages in order.
func NewPipeline(steps ...Transformer) *Pipeline {
	return &Pipeline{steps: steps}
}

// NewStandard returns the drop-then-fill pipeline the estimator expects.
func NewStandard(dropColumns []string, fill frame.Value) *Pipeline {
	return NewPipeline(
		NewColumnDropper(dropColumns...),
		NewNaNFiller(fill),
	)
}

// Steps returns the stage names in execution order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}
	return names
}

// Fit fits each stage on the output of the previous one.
func (p *Pipeline) Fit(f *frame.Frame) error {
	for _, step := range p.steps {
		if err := step.Fit(f); err != nil {
			return err
		}
		f = step.Transform(f)
	}
	return nil
}

// Transform runs f through every stage.
func (p *Pipeline) Transform(f *frame.Frame) *frame.Frame {
	for _, step := range p.steps {
		f = step.Transform(f)
	}
	return f
}
