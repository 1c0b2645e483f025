package inference

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency prefixes displayed amounts.
const DefaultCurrency = "Rs."

// printer groups digits in threes: 75000 -> 75,000.
var printer = message.NewPrinter(language.English)

// int64 bounds as exact float64 values.
const (
	minInt64Float = -0x1p63
	maxInt64Float = 0x1p63
)

// Round rounds to the nearest whole unit, halves to even. ok is false when
// the result does not fit in an int64.
func Round(v float64) (n int64, ok bool) {
	r := math.RoundToEven(v)
	if math.IsNaN(r) || r < minInt64Float || r >= maxInt64Float {
		return 0, false
	}
	return int64(r), true
}

// FormatAmount renders v as "<currency> 75,000". Amounts beyond the int64
// range keep their grouping: 1e20 -> "Rs. 100,000,000,000,000,000,000".
func FormatAmount(currency string, v float64) string {
	if n, ok := Round(v); ok {
		return printer.Sprintf("%s %d", currency, n)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return printer.Sprintf("%s %v", currency, v)
	}
	return printer.Sprintf("%s %.0f", currency, math.RoundToEven(v))
}

// FormatMessage renders the sentence shown after a prediction.
func FormatMessage(currency string, v float64) string {
	return "The estimated CTC to be provided is " + FormatAmount(currency, v) + " per annum."
}
