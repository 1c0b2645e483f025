// Package frame contains the tabular record and batch types that flow
// through preprocessing and into the estimator.
package frame

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind tags the content of a Value.
type Kind uint8

// Value kinds.
const (
	KindMissing Kind = iota
	KindNumber
	KindText
)

// Value is a single cell: a number, a text string, or missing.
// The zero Value is missing.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Number returns a numeric Value. NaN is treated as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// Int returns a numeric Value from an integer.
func Int(i int) Value { return Value{kind: KindNumber, num: float64(i)} }

// Text returns a text Value. Empty strings are kept as text.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Missing returns a missing Value.
func Missing() Value { return Value{} }

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v holds no value.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric content and whether v is a number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Str returns the text content and whether v is text.
func (v Value) Str() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// String renders v for logs and category lookup. Integral numbers print
// without a fractional part.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	default:
		return "<missing>"
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindText:
		return v.text == o.text
	default:
		return true
	}
}

// MarshalJSON encodes numbers as JSON numbers, text as strings and
// missing as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return strconv.AppendFloat(nil, v.num, 'f', -1, 64), nil
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a JSON number, string or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*v = Missing()
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*v = Text(text)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*v = Number(f)
	return nil
}
