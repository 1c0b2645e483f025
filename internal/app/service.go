// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/ctcpredict/internal/domain/candidate"
	"github.com/okian/ctcpredict/internal/domain/estimator"
	"github.com/okian/ctcpredict/internal/domain/inference"
	"github.com/okian/ctcpredict/internal/domain/preprocess"
	"github.com/okian/ctcpredict/internal/domain/types"
	"github.com/okian/ctcpredict/pkg/logger"
	"github.com/okian/ctcpredict/pkg/metrics"
)

// Service implements the API dependencies for the CTC predictor.
type Service struct {
	mu sync.RWMutex

	// Configuration
	modelPath string
	currency  string

	// Injected or loaded at Start
	estimator estimator.Estimator
	pipeline  *preprocess.Pipeline
	predictor *inference.Predictor
	modelKind string
	version   string

	// State
	started     bool
	predictions atomic.Int64
	failures    atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithModelPath sets the artifact loaded by Start.
func WithModelPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.modelPath = path
		}
	}
}

// WithCurrency sets the prefix of displayed amounts.
func WithCurrency(currency string) Option {
	return func(s *Service) {
		if currency != "" {
			s.currency = currency
		}
	}
}

// WithEstimator injects an estimator; Start then skips loading the artifact.
func WithEstimator(est estimator.Estimator) Option {
	return func(s *Service) {
		if est != nil {
			s.estimator = est
		}
	}
}

// WithPipeline overrides the preprocessing pipeline.
func WithPipeline(p *preprocess.Pipeline) Option {
	return func(s *Service) {
		if p != nil {
			s.pipeline = p
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		modelPath: "models/ctc_model.json",
		currency:  inference.DefaultCurrency,
		logger:    nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the model once and builds the predictor.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	est, pipeline := s.estimator, s.pipeline
	if est == nil {
		s.logger.Info(ctx, "loading model artifact", logger.String("path", s.modelPath))
		began := time.Now()
		m, err := loadModel(ctx, s.modelPath)
		if err != nil {
			s.logger.Error(ctx, "model load failed", logger.String("path", s.modelPath), logger.Error(err))
			return err
		}
		elapsed := time.Since(began)
		est = m
		s.modelKind, s.version = m.Kind(), m.Version()
		if pipeline == nil {
			pipeline = preprocess.NewStandard(m.DropColumns(), m.FillValue())
		}
		metrics.SetModelInfo(m.Kind(), m.Version(), float64(elapsed.Microseconds())/1000)
		s.logger.Info(ctx, "model loaded",
			logger.String("kind", m.Kind()),
			logger.String("version", m.Version()),
			logger.Int("features", len(m.Features())),
			logger.Duration("elapsed", elapsed),
		)
	} else {
		s.modelKind = "injected"
	}
	if pipeline == nil {
		pipeline = preprocess.NewStandard(nil, preprocess.DefaultFillValue)
	}

	s.pipeline = pipeline
	s.predictor = inference.NewPredictor(candidate.Columns, pipeline, est)
	s.started = true
	s.logger.Info(ctx, "ctc predictor service started",
		logger.Strings("steps", pipeline.Steps()),
		logger.String("currency", s.currency),
	)
	return nil
}

func loadModel(ctx context.Context, path string) (*estimator.Model, error) {
	a, err := estimator.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}
	m, err := estimator.New(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}
	return m, nil
}

// Stop marks the service as stopped. The loaded model is released.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.predictor = nil
	s.started = false
	s.logger.Info(context.Background(), "ctc predictor service stopped",
		logger.Int64("predictions", s.predictions.Load()),
		logger.Int64("failures", s.failures.Load()),
	)
}

// Predict scores one candidate. The form is expected to be validated by the caller.
func (s *Service) Predict(ctx context.Context, form candidate.Form) (types.Prediction, error) {
	s.mu.RLock()
	predictor, started, version := s.predictor, s.started, s.version
	s.mu.RUnlock()

	if !started {
		return types.Prediction{}, ErrNotStarted
	}

	rec := form.Record()
	missing := 0
	for _, v := range rec {
		if v.IsMissing() {
			missing++
		}
	}

	began := time.Now()
	v, err := predictor.Predict(ctx, rec)
	latencyMs := float64(time.Since(began).Microseconds()) / 1000
	if err != nil {
		s.failures.Add(1)
		kind := errorKind(err)
		metrics.RecordPredictionError(kind, latencyMs)
		s.logger.Warn(ctx, "prediction failed",
			logger.String("kind", kind),
			logger.Int("applicantID", form.ApplicantID),
			logger.Error(err),
		)
		return types.Prediction{}, err
	}

	s.predictions.Add(1)
	metrics.RecordPrediction(v, latencyMs)
	metrics.RecordMissingFields(missing)

	p := types.Prediction{
		ID:           uuid.NewString(),
		CTC:          v,
		Amount:       inference.FormatAmount(s.currency, v),
		Message:      inference.FormatMessage(s.currency, v),
		ModelVersion: version,
	}
	if n, ok := inference.Round(v); ok {
		p.Rounded = &n
	}
	s.logger.Debug(ctx, "prediction served",
		logger.String("id", p.ID),
		logger.Float64("ctc", v),
		logger.Int("filled", missing),
		logger.Float64("latencyMs", latencyMs),
	)
	return p, nil
}

// Ready reports whether Start has loaded the model.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// Options returns the choices offered by the form.
func (s *Service) Options(_ context.Context) candidate.Options {
	return candidate.DefaultOptions()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"modelPath":   s.modelPath,
		"predictions": s.predictions.Load(),
		"failures":    s.failures.Load(),
	}

	if s.started {
		stats["modelKind"] = s.modelKind
		stats["modelVersion"] = s.version
		stats["steps"] = s.pipeline.Steps()
	}

	return stats
}

// errorKind maps a prediction failure to a metrics label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, estimator.ErrUnknownCategory):
		return "unknown_category"
	case errors.Is(err, estimator.ErrMissingColumn):
		return "missing_column"
	case errors.Is(err, estimator.ErrInvalidNumeric):
		return "invalid_numeric"
	case errors.Is(err, inference.ErrShape):
		return "shape"
	case errors.Is(err, inference.ErrNonFinite):
		return "non_finite"
	default:
		return "internal"
	}
}
