// Package estimator defines the contract for the pre-fit regression model
// and the artifact-backed implementation loaded at startup.
package estimator

import (
	"context"
	"fmt"

	"github.com/okian/ctcpredict/internal/domain/frame"
)

// Estimator maps a preprocessed batch to one prediction per row.
// Implementations are read-only after construction and safe for
// concurrent use.
type Estimator interface {
	Predict(ctx context.Context, f *frame.Frame) ([]float64, error)
}

// Constant is a stub Estimator that returns the same value for every row.
type Constant float64

// Predict implements Estimator.
func (c Constant) Predict(ctx context.Context, f *frame.Frame) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	out := make([]float64, f.Len())
	for i := range out {
		out[i] = float64(c)
	}
	return out, nil
}

// Func adapts a function to Estimator.
type Func func(ctx context.Context, f *frame.Frame) ([]float64, error)

// Predict implements Estimator.
func (fn Func) Predict(ctx context.Context, f *frame.Frame) ([]float64, error) {
	return fn(ctx, f)
}
