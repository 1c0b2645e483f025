package frame

import (
	"fmt"
	"slices"
)

// Record maps a field name to its value for one candidate.
type Record map[string]Value

// Frame is a batch of rows sharing one ordered column schema.
// Transform stages never mutate a Frame in place; they return a new one.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New creates an empty frame with the given columns. Duplicate names
// keep their first position.
func New(columns ...string) *Frame {
	f := &Frame{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, ok := f.index[c]; ok {
			continue
		}
		f.index[c] = len(f.columns)
		f.columns = append(f.columns, c)
	}
	return f
}

// FromRecords builds a frame with one row per record. A column absent
// from a record becomes a missing cell; record keys outside columns are
// ignored.
func FromRecords(columns []string, records ...Record) *Frame {
	f := New(columns...)
	f.rows = make([][]Value, 0, len(records))
	for _, rec := range records {
		row := make([]Value, len(f.columns))
		for i, c := range f.columns {
			row[i] = rec[c]
		}
		f.rows = append(f.rows, row)
	}
	return f
}

// AppendRow adds a row. The number of values must match the column count.
func (f *Frame) AppendRow(values ...Value) error {
	if len(values) != len(f.columns) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrShape, len(values), len(f.columns))
	}
	f.rows = append(f.rows, slices.Clone(values))
	return nil
}

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string { return slices.Clone(f.columns) }

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.rows) }

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.columns) }

// HasColumn reports whether name is a column of f.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns a copy of the named column's cells.
func (f *Frame) Column(name string) ([]Value, bool) {
	j, ok := f.index[name]
	if !ok {
		return nil, false
	}
	out := make([]Value, len(f.rows))
	for i, row := range f.rows {
		out[i] = row[j]
	}
	return out, true
}

// Cell returns the value at row i of the named column.
func (f *Frame) Cell(i int, name string) (Value, bool) {
	j, ok := f.index[name]
	if !ok || i < 0 || i >= len(f.rows) {
		return Value{}, false
	}
	return f.rows[i][j], true
}

// Row returns row i as a Record. ok is false when i is out of range.
func (f *Frame) Row(i int) (Record, bool) {
	if i < 0 || i >= len(f.rows) {
		return nil, false
	}
	rec := make(Record, len(f.columns))
	for j, c := range f.columns {
		rec[c] = f.rows[i][j]
	}
	return rec, true
}

// MissingCount returns the number of missing cells across the frame.
func (f *Frame) MissingCount() int {
	n := 0
	for _, row := range f.rows {
		for _, v := range row {
			if v.IsMissing() {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of f.
func (f *Frame) Clone() *Frame {
	out := New(f.columns...)
	out.rows = make([][]Value, len(f.rows))
	for i, row := range f.rows {
		out.rows[i] = slices.Clone(row)
	}
	return out
}

// Equal reports whether both frames have the same columns in the same
// order and identical cells.
func (f *Frame) Equal(o *Frame) bool {
	if !slices.Equal(f.columns, o.columns) || len(f.rows) != len(o.rows) {
		return false
	}
	for i := range f.rows {
		for j := range f.rows[i] {
			if !f.rows[i][j].Equal(o.rows[i][j]) {
				return false
			}
		}
	}
	return true
}

// Drop returns a new frame without the named columns. Names that are not
// columns of f are ignored. Remaining column order and row order are kept.
func (f *Frame) Drop(names ...string) *Frame {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}

	keep := make([]int, 0, len(f.columns))
	cols := make([]string, 0, len(f.columns))
	for j, c := range f.columns {
		if _, ok := drop[c]; ok {
			continue
		}
		keep = append(keep, j)
		cols = append(cols, c)
	}

	out := New(cols...)
	out.rows = make([][]Value, len(f.rows))
	for i, row := range f.rows {
		nr := make([]Value, len(keep))
		for k, j := range keep {
			nr[k] = row[j]
		}
		out.rows[i] = nr
	}
	return out
}

// FillMissing returns a new frame where every missing cell holds fill.
// Present cells are unchanged.
func (f *Frame) FillMissing(fill Value) *Frame {
	out := f.Clone()
	for _, row := range out.rows {
		for j, v := range row {
			if v.IsMissing() {
				row[j] = fill
			}
		}
	}
	return out
}
