package candidatesim

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
)

// Verification failures.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrBadPrediction    = errors.New("bad prediction")
)

// verifyResult checks one response: HTTP 200, a positive finite CTC and a
// display string carrying the currency prefix.
func verifyResult(r Result, currency string) error {
	if r.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, r.StatusCode)
	}
	p := r.Prediction
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: missing id", ErrBadPrediction)
	case math.IsNaN(p.CTC) || math.IsInf(p.CTC, 0) || p.CTC <= 0:
		return fmt.Errorf("%w: ctc %v is not positive", ErrBadPrediction, p.CTC)
	case !strings.HasPrefix(p.Amount, currency+" "):
		return fmt.Errorf("%w: amount %q lacks prefix %q", ErrBadPrediction, p.Amount, currency)
	case !strings.Contains(p.Message, p.Amount):
		return fmt.Errorf("%w: message %q does not show %q", ErrBadPrediction, p.Message, p.Amount)
	}
	return nil
}

// summarize folds verified results into stats.
func summarize(results []Result, currency string, stats *Stats) {
	var sum float64
	stats.MinCTC, stats.MaxCTC = math.Inf(1), math.Inf(-1)
	for _, r := range results {
		if r.StatusCode == 0 && r.Error == "" {
			continue // never sent
		}
		stats.Submitted++
		switch {
		case verifyResult(r, currency) == nil:
			stats.Successful++
			sum += r.Prediction.CTC
			stats.MinCTC = math.Min(stats.MinCTC, r.Prediction.CTC)
			stats.MaxCTC = math.Max(stats.MaxCTC, r.Prediction.CTC)
		case r.StatusCode >= http.StatusBadRequest && r.StatusCode < http.StatusInternalServerError:
			stats.Rejected++
		default:
			stats.Failed++
		}
	}
	if stats.Successful == 0 {
		stats.MinCTC, stats.MaxCTC = 0, 0
		return
	}
	stats.MeanCTC = sum / float64(stats.Successful)
}
