// Package inference runs one candidate record through preprocessing and
// the estimator.
package inference

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/okian/ctcpredict/internal/domain/estimator"
	"github.com/okian/ctcpredict/internal/domain/frame"
	"github.com/okian/ctcpredict/internal/domain/preprocess"
)

var (
	// ErrShape is returned when the estimator does not yield one value per row.
	ErrShape = errors.New("estimator output shape mismatch")
	// ErrNonFinite is returned when the estimator yields NaN or an infinity.
	ErrNonFinite = errors.New("estimator output is not finite")
)

// Predictor composes the preprocessing pipeline with the estimator.
// Both are read-only, so one Predictor serves concurrent requests.
type Predictor struct {
	columns   []string
	pipeline  *preprocess.Pipeline
	estimator estimator.Estimator
}

// NewPredictor returns a Predictor that lays records out in columns order
// before preprocessing.
func NewPredictor(columns []string, p *preprocess.Pipeline, est estimator.Estimator) *Predictor {
	return &Predictor{columns: columns, pipeline: p, estimator: est}
}

// Predict wraps rec as a single-row batch and returns its prediction.
// Estimator errors are returned unchanged.
func (p *Predictor) Predict(ctx context.Context, rec frame.Record) (float64, error) {
	out, err := p.PredictBatch(ctx, frame.FromRecords(p.columns, rec))
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

// PredictBatch preprocesses f and returns one prediction per row.
func (p *Predictor) PredictBatch(ctx context.Context, f *frame.Frame) ([]float64, error) {
	prepared := p.pipeline.Transform(f)
	out, err := p.estimator.Predict(ctx, prepared)
	if err != nil {
		return nil, err
	}
	if len(out) != f.Len() {
		return nil, fmt.Errorf("%w: %d predictions for %d rows", ErrShape, len(out), f.Len())
	}
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: row %d is %v", ErrNonFinite, i, v)
		}
	}
	return out, nil
}

// Prepare exposes the batch exactly as the estimator receives it.
func (p *Predictor) Prepare(rec frame.Record) *frame.Frame {
	return p.pipeline.Transform(frame.FromRecords(p.columns, rec))
}
