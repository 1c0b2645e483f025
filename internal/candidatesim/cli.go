package candidatesim

import (
	"fmt"
	"os"

	"github.com/okian/ctcpredict/pkg/logger"
)

// SetupLogging initializes the global logger for the CLI.
func SetupLogging(format string, verbose bool) error {
	if err := logger.InitWithFormat(format, os.Stdout); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`CTC Predictor Candidate Simulator
=================================

Generates random candidates from the form options, posts them to
/predict concurrently and verifies every answer.

Usage:
  go run ./cmd/sample-candidates [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -candidates int
        Number of candidates to generate and submit (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -seed uint
        Generator seed; 0 picks one from the clock (default 0)
  -currency string
        Expected amount prefix (default "Rs.")
  -output string
        Write every request and response to this JSON file
  -log-format string
        Log format: text or json (default "text")
  -verbose
        Log each failed candidate
  -help
        Show this help message

Examples:
  go run ./cmd/sample-candidates -candidates 5000 -workers 16
  go run ./cmd/sample-candidates -seed 42 -output results/run.json
`)
}
