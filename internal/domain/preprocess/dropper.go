package preprocess

import (
	"slices"

	"github.com/okian/ctcpredict/internal/domain/frame"
)

// ColumnDropper removes a fixed set of columns. Names absent from the
// input are ignored, so one configuration survives minor schema drift.
type ColumnDropper struct {
	columns []string
}

// NewColumnDropper copies columns; later changes to the caller's slice
// do not affect the dropper.
func NewColumnDropper(columns ...string) *ColumnDropper {
	return &ColumnDropper{columns: slices.Clone(columns)}
}

// Name implements Transformer.
func (d *ColumnDropper) Name() string { return "column_dropper" }

// Columns returns a copy of the configured names.
func (d *ColumnDropper) Columns() []string { return slices.Clone(d.columns) }

// Fit is a no-op; the dropper carries no learned state.
func (d *ColumnDropper) Fit(*frame.Frame) error { return nil }

// Transform returns f without the configured columns.
func (d *ColumnDropper) Transform(f *frame.Frame) *frame.Frame {
	return f.Drop(d.columns...)
}
