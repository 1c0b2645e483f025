package estimator

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrArtifact marks a model artifact that is missing, undecodable or
	// internally inconsistent. It is fatal at startup.
	ErrArtifact = errors.New("invalid model artifact")

	// ErrMissingColumn marks a batch lacking a column the model was fit on.
	ErrMissingColumn = errors.New("missing feature column")

	// ErrUnknownCategory marks a categorical value never seen during fitting.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidNumeric marks a non-numeric value in a numeric feature.
	ErrInvalidNumeric = errors.New("invalid numeric value")
)
