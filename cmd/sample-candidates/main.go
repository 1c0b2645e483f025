package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/ctcpredict/internal/candidatesim"
	"github.com/okian/ctcpredict/internal/domain/inference"
)

// Default configuration constants.
const (
	defaultNumCandidates = 1000
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 10 * time.Second
	defaultRunTimeout    = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		candidates = flag.Int("candidates", defaultNumCandidates, "Number of candidates to generate and submit")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed       = flag.Uint64("seed", 0, "Generator seed; 0 picks one from the clock")
		currency   = flag.String("currency", inference.DefaultCurrency, "Expected amount prefix")
		outputFile = flag.String("output", "", "Write every request and response to this JSON file")
		logFormat  = flag.String("log-format", "text", "Log format: text or json")
		verbose    = flag.Bool("verbose", false, "Log each failed candidate")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		candidatesim.ShowHelp()
		return
	}

	if err := candidatesim.SetupLogging(*logFormat, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	config := &candidatesim.Config{
		BaseURL:       *baseURL,
		NumCandidates: *candidates,
		Workers:       *workers,
		Timeout:       *timeout,
		Seed:          *seed,
		Currency:      *currency,
		OutputFile:    *outputFile,
		Verbose:       *verbose,
	}

	if _, err := candidatesim.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
