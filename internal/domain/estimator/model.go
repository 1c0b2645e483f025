package estimator

import (
	"context"
	"fmt"
	"slices"

	"github.com/okian/ctcpredict/internal/domain/frame"
)

// regressor scores one encoded feature vector.
type regressor interface {
	score(x []float64) float64
}

// Model is an Estimator backed by a validated Artifact. It performs the
// encoding that was fit together with the regressor: standard scaling
// for numeric columns followed by one-hot encoding of categorical ones.
type Model struct {
	artifact *Artifact
	cats     []map[string]int // per categorical feature: category -> offset
	reg      regressor
}

// New builds a Model from a. The artifact is validated again so callers
// constructing it in code get the same guarantees as Load.
func New(a *Artifact) (*Model, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil artifact", ErrArtifact)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	m := &Model{artifact: a, cats: make([]map[string]int, len(a.Categorical))}
	for i, c := range a.Categorical {
		idx := make(map[string]int, len(c.Categories))
		for j, v := range c.Categories {
			idx[v] = j
		}
		m.cats[i] = idx
	}

	switch a.Kind {
	case KindLinear:
		m.reg = linear{intercept: a.Linear.Intercept, coef: slices.Clone(a.Linear.Coefficients)}
	case KindForest:
		m.reg = forest{trees: slices.Clone(a.Forest.Trees)}
	}
	return m, nil
}

// Kind returns the model family.
func (m *Model) Kind() string { return m.artifact.Kind }

// Version returns the artifact version label.
func (m *Model) Version() string { return m.artifact.Version }

// DropColumns returns the drop list the model was fit with.
func (m *Model) DropColumns() []string { return slices.Clone(m.artifact.Preprocess.DropColumns) }

// FillValue returns the missing-value sentinel the model was fit with.
func (m *Model) FillValue() frame.Value { return m.artifact.Preprocess.FillValue }

// Features returns the names of the columns the model reads.
func (m *Model) Features() []string {
	names := make([]string, 0, len(m.artifact.Numeric)+len(m.artifact.Categorical))
	for _, n := range m.artifact.Numeric {
		names = append(names, n.Name)
	}
	for _, c := range m.artifact.Categorical {
		names = append(names, c.Name)
	}
	return names
}

// Predict implements Estimator. Columns not named by the artifact are
// ignored; a missing feature column or an unseen category fails the
// whole batch.
func (m *Model) Predict(ctx context.Context, f *frame.Frame) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	for _, name := range m.Features() {
		if !f.HasColumn(name) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	out := make([]float64, f.Len())
	x := make([]float64, m.artifact.Width())
	for i := range out {
		if err := m.encode(f, i, x); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = m.reg.score(x)
	}
	return out, nil
}

// encode writes row i of f into x.
func (m *Model) encode(f *frame.Frame, i int, x []float64) error {
	pos := 0
	for _, n := range m.artifact.Numeric {
		v, _ := f.Cell(i, n.Name)
		raw, err := numeric(n, v)
		if err != nil {
			return err
		}
		scale := n.Scale
		if scale == 0 {
			scale = 1
		}
		x[pos] = (raw - n.Mean) / scale
		pos++
	}

	for k, c := range m.artifact.Categorical {
		v, _ := f.Cell(i, c.Name)
		clear(x[pos : pos+len(c.Categories)])
		j, ok := m.cats[k][v.String()]
		if v.IsMissing() || !ok {
			return fmt.Errorf("%w: %s=%q", ErrUnknownCategory, c.Name, v.String())
		}
		x[pos+j] = 1
		pos += len(c.Categories)
	}
	return nil
}

func numeric(n NumericFeature, v frame.Value) (float64, error) {
	if f, ok := v.Float(); ok {
		return f, nil
	}
	if n.Missing != "" {
		if s, ok := v.Str(); ok && s == n.Missing {
			return n.Impute, nil
		}
	}
	return 0, fmt.Errorf("%w: %s=%q", ErrInvalidNumeric, n.Name, v.String())
}

type linear struct {
	intercept float64
	coef      []float64
}

func (l linear) score(x []float64) float64 {
	sum := l.intercept
	for j, w := range l.coef {
		sum += w * x[j]
	}
	return sum
}

type forest struct {
	trees []Tree
}

func (f forest) score(x []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += t.score(x)
	}
	return sum / float64(len(f.trees))
}

func (t Tree) score(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature == leafFeature {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}
