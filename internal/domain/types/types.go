// Package types contains common types used across the application
package types

// Prediction is the result of scoring one candidate. Rounded is nil when
// the whole-unit amount does not fit in an int64; Amount is always set.
type Prediction struct {
	ID           string  `json:"id"`
	CTC          float64 `json:"ctc"`
	Rounded      *int64  `json:"rounded,omitempty"`
	Amount       string  `json:"amount"`
	Message      string  `json:"message"`
	ModelVersion string  `json:"model_version,omitempty"`
}
