package candidatesim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/ctcpredict/internal/domain/candidate"
	"github.com/okian/ctcpredict/internal/domain/inference"
	"github.com/okian/ctcpredict/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// progressInterval throttles progress logging.
const progressInterval = time.Second

// ErrRunFailed reports that at least one candidate failed verification.
var ErrRunFailed = errors.New("simulation failed")

// Run executes the complete simulation and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if config.Currency == "" {
		config.Currency = inference.DefaultCurrency
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Seed == 0 {
		config.Seed = uint64(time.Now().UnixNano())
	}

	stats := &Stats{RunID: uuid.NewString(), StartTime: time.Now()}
	log := logger.Get().With(logger.String("runID", stats.RunID))

	log.Info(ctx, "starting candidate simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("candidates", config.NumCandidates),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Int64("seed", int64(config.Seed)),
	)

	client := newHTTPClient(config.Timeout)

	if err := checkServiceHealth(ctx, client, config.BaseURL); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	forms := NewGenerator(config.Seed, candidate.DefaultOptions()).Generate(config.NumCandidates)
	stats.CandidatesGenerated = len(forms)
	log.Info(ctx, "generated candidates", logger.Int("count", len(forms)))

	results := submitCandidates(ctx, client, config, forms, log)
	summarize(results, config.Currency, stats)

	if config.OutputFile != "" {
		if err := saveResults(config.OutputFile, results); err != nil {
			log.Warn(ctx, "failed to save results to file", logger.Error(err))
		} else {
			log.Info(ctx, "results saved to file", logger.String("filename", config.OutputFile))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, config.Currency, stats)

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("simulation interrupted: %w", err)
	}
	if stats.Failed > 0 || stats.Rejected > 0 {
		return stats, fmt.Errorf("%w: %d failed, %d rejected of %d", ErrRunFailed, stats.Failed, stats.Rejected, stats.Submitted)
	}
	log.Info(ctx, "simulation completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *httpClient, baseURL string) error {
	resp, err := client.get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

// submitCandidates posts forms with at most config.Workers in flight. Results keep the
// order of forms.
func submitCandidates(ctx context.Context, client *httpClient, config *Config, forms []candidate.Form, log logger.Logger) []Result {
	results := make([]Result, len(forms))
	url := config.BaseURL + "/predict"

	var (
		done     atomic.Int64
		failed   atomic.Int64
		mu       sync.Mutex
		lastSeen = time.Now()
	)

	var g errgroup.Group
	g.SetLimit(config.Workers)
	for i := range forms {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r := submitSingle(ctx, client, url, i, forms[i])
			results[i] = r
			if verifyResult(r, config.Currency) != nil {
				failed.Add(1)
				if config.Verbose {
					log.Warn(ctx, "candidate failed",
						logger.Int("applicantID", r.Form.ApplicantID),
						logger.Int("status", r.StatusCode),
						logger.String("error", r.Error),
					)
				}
			}
			n := done.Add(1)

			mu.Lock()
			defer mu.Unlock()
			if time.Since(lastSeen) >= progressInterval {
				lastSeen = time.Now()
				log.Info(ctx, "progress",
					logger.Int64("submitted", n),
					logger.Int("total", len(forms)),
					logger.Int64("failed", failed.Load()),
				)
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// submitSingle posts one form and decodes the answer.
func submitSingle(ctx context.Context, client *httpClient, url string, index int, form candidate.Form) Result {
	r := Result{Index: index, Form: form}

	resp, err := client.postJSON(ctx, url, form)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	defer func() { _ = resp.Body.Close() }()

	r.StatusCode = resp.StatusCode
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &e) == nil {
			r.Error = e.Message
		}
		return r
	}
	if err := json.Unmarshal(body, &r.Prediction); err != nil {
		r.Error = err.Error()
	}
	return r
}

// saveResults writes results as an indented JSON array.
func saveResults(filename string, results []Result) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// displayFinalStats logs the final statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, currency string, stats *Stats) {
	var successRate, perSecond float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Successful) / float64(stats.Submitted) * 100
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.CandidatesGenerated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.String("minCTC", inference.FormatAmount(currency, stats.MinCTC)),
		logger.String("meanCTC", inference.FormatAmount(currency, stats.MeanCTC)),
		logger.String("maxCTC", inference.FormatAmount(currency, stats.MaxCTC)),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("predictionsPerSecond", perSecond),
	)
}
