// Package candidatesim generates random candidates and replays them
// against a running predictor to check it end to end.
package candidatesim

import (
	"time"

	"github.com/okian/ctcpredict/internal/domain/candidate"
	"github.com/okian/ctcpredict/internal/domain/types"
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL       string        // Base URL of the service
	NumCandidates int           // Number of candidates to generate
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // HTTP request timeout
	Seed          uint64        // Generator seed; 0 picks one from the clock
	Currency      string        // Expected display prefix
	OutputFile    string        // Optional JSON file for results
	Verbose       bool          // Log every failed candidate
}

// Result is the outcome of submitting one candidate.
type Result struct {
	Index      int              `json:"index"`
	Form       candidate.Form   `json:"form"`
	StatusCode int              `json:"status_code"`
	Prediction types.Prediction `json:"prediction"`
	Error      string           `json:"error,omitempty"`
}

// Stats holds run statistics.
type Stats struct {
	RunID               string
	CandidatesGenerated int
	Submitted           int
	Successful          int
	Rejected            int
	Failed              int
	MinCTC              float64
	MaxCTC              float64
	MeanCTC             float64
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
