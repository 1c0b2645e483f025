package preprocess

import (
	"github.com/okian/ctcpredict/internal/domain/frame"
)

// DefaultFillValue is the sentinel the estimators in this service were fit with.
var DefaultFillValue = frame.Text("NA")

// NaNFiller replaces every missing cell with one literal. The fill is
// applied to every column, categorical or not.
type NaNFiller struct {
	fill frame.Value
}

// NewNaNFiller returns a filler for fill. A missing fill value falls back
// to DefaultFillValue so the output never contains missing cells.
func NewNaNFiller(fill frame.Value) *NaNFiller {
	if fill.IsMissing() {
		fill = DefaultFillValue
	}
	return &NaNFiller{fill: fill}
}

// Name implements Transformer.
func (n *NaNFiller) Name() string { return "nan_filler" }

// FillValue returns the configured sentinel.
func (n *NaNFiller) FillValue() frame.Value { return n.fill }

// Fit is a no-op; no column statistics are learned.
func (n *NaNFiller) Fit(*frame.Frame) error { return nil }

// Transform returns f with every missing cell set to the sentinel.
func (n *NaNFiller) Transform(f *frame.Frame) *frame.Frame {
	return f.FillMissing(n.fill)
}
