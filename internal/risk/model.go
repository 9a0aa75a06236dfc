package risk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/disease-risk-backend-go/internal/metrics"
	"github.com/jengzang/disease-risk-backend-go/internal/models"
	"github.com/jengzang/disease-risk-backend-go/internal/stats"
)

// RecordSource supplies every usable occurrence record
type RecordSource interface {
	ListAll(ctx context.Context) ([]models.OccurrenceRecord, error)
}

// State of the risk model
type State string

const (
	StateUntrained State = "untrained"
	StateTrained   State = "trained"
)

const (
	// DefaultMinRecords is the smallest record count trained on without filler data
	DefaultMinRecords = 10

	testFraction = 0.2
)

// ModelInfo summarizes the current model for status endpoints
type ModelInfo struct {
	State          State     `json:"state"`
	RunID          string    `json:"run_id,omitempty"`
	TrainedAt      time.Time `json:"trained_at,omitempty"`
	Metrics        *Metrics  `json:"metrics,omitempty"`
	FeatureColumns []string  `json:"feature_columns"`
	Categories     []string  `json:"categories,omitempty"`
	ModelPath      string    `json:"model_path"`
}

// Model owns the fitted bundle and moves it between the untrained and
// trained states. Train calls are serialized; predictions read an immutable
// snapshot and never block on a running fit.
type Model struct {
	mu     sync.RWMutex
	bundle *Bundle

	trainMu sync.Mutex

	source         RecordSource
	path           string
	sampler        *Sampler
	synth          *SyntheticGenerator
	syntheticCount int
	minRecords     int
	now            func() time.Time
	logger         *slog.Logger
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithSampler sets the risk area sampler
func WithSampler(s *Sampler) Option {
	return func(m *Model) { m.sampler = s }
}

// WithSyntheticGenerator sets the filler record generator
func WithSyntheticGenerator(g *SyntheticGenerator) Option {
	return func(m *Model) { m.synth = g }
}

// WithSyntheticCount sets how many filler records are added to a small training set; 0 disables filler data
func WithSyntheticCount(n int) Option {
	return func(m *Model) { m.syntheticCount = n }
}

// WithMinRecords sets the record count below which filler data is added
func WithMinRecords(n int) Option {
	return func(m *Model) { m.minRecords = n }
}

// WithClock sets the time source used for query dates and filler data
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// NewModel creates a model and loads a previously saved bundle from path.
// A missing or unreadable bundle leaves the model untrained.
func NewModel(source RecordSource, path string, opts ...Option) *Model {
	m := &Model{
		source:         source,
		path:           path,
		syntheticCount: DefaultSyntheticCount,
		minRecords:     DefaultMinRecords,
		now:            time.Now,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sampler == nil {
		m.sampler = NewSampler(0)
	}
	if m.synth == nil {
		m.synth = NewSyntheticGenerator(0)
	}

	m.load()
	return m
}

func (m *Model) load() {
	if m.path == "" {
		return
	}

	b, err := LoadBundle(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("no saved risk model", "path", m.path)
		} else {
			m.logger.Warn("failed to load risk model, starting untrained", "path", m.path, "error", err)
		}
		return
	}

	m.publish(b)
	m.logger.Info("risk model loaded", "path", m.path, "run_id", b.RunID, "trained_at", b.TrainedAt)
}

func (m *Model) publish(b *Bundle) {
	m.mu.Lock()
	m.bundle = b
	m.mu.Unlock()

	metrics.ModelMSE.Set(b.Metrics.MSE)
	metrics.ModelR2.Set(b.Metrics.R2)
}

// Snapshot returns the current bundle, nil when untrained
func (m *Model) Snapshot() *Bundle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bundle
}

// IsTrained reports whether a fitted bundle is available
func (m *Model) IsTrained() bool {
	return m.Snapshot() != nil
}

// State returns the current state
func (m *Model) State() State {
	if m.IsTrained() {
		return StateTrained
	}
	return StateUntrained
}

// Info summarizes the current bundle
func (m *Model) Info() ModelInfo {
	info := ModelInfo{
		State:          StateUntrained,
		FeatureColumns: FeatureColumns,
		ModelPath:      m.path,
	}

	b := m.Snapshot()
	if b == nil {
		return info
	}

	metricsCopy := b.Metrics
	info.State = StateTrained
	info.RunID = b.RunID
	info.TrainedAt = b.TrainedAt
	info.Metrics = &metricsCopy
	info.Categories = append([]string(nil), b.Categories.Names...)
	return info
}

// Train refits the model from scratch on every available record. It reports
// failure instead of returning an error; a failed run keeps the previous bundle.
func (m *Model) Train(ctx context.Context) (ok bool) {
	m.trainMu.Lock()
	defer m.trainMu.Unlock()

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			m.logger.Error("risk model training panicked", "panic", p)
			ok = false
		}

		result := "success"
		if !ok {
			result = "failure"
		}
		metrics.TrainingRunsTotal.WithLabelValues(result).Inc()
		metrics.TrainingDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	}()

	b, err := m.fit(ctx)
	if err != nil {
		m.logger.Error("risk model training failed", "error", err)
		return false
	}

	m.publish(b)
	m.logger.Info("risk model training complete",
		"run_id", b.RunID,
		"records", b.Metrics.Records,
		"synthetic", b.Metrics.Synthetic,
		"mse", b.Metrics.MSE,
		"r2", b.Metrics.R2,
		"duration", time.Since(start),
	)

	m.save(b)
	return true
}

func (m *Model) fit(ctx context.Context) (*Bundle, error) {
	var records []models.OccurrenceRecord
	if m.source != nil {
		var err error
		records, err = m.source.ListAll(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("training aborted: %w", ctxErr)
		}
		if err != nil {
			m.logger.Warn("failed to list occurrence records", "error", err)
			records = nil
		}
	}

	pulled := len(records)
	synthetic := 0
	if pulled < m.minRecords && m.syntheticCount > 0 {
		m.logger.Info("insufficient data for training, adding synthetic records",
			"records", pulled, "synthetic", m.syntheticCount)
		records = append(records, m.synth.Generate(m.syntheticCount, m.now())...)
		synthetic = m.syntheticCount
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %d records", ErrInsufficientData, len(records))
	}

	idx := NewCategoryIndex(records)
	features, err := BuildFeatures(records, idx)
	if err != nil {
		return nil, fmt.Errorf("failed to build features: %w", err)
	}
	labels := SynthesizeLabels(records)

	trainIdx, testIdx, err := TrainTestSplit(len(records), testFraction, SplitSeed)
	if err != nil {
		return nil, err
	}

	var scaler StandardScaler
	xTrain, err := scaler.FitTransform(selectRows(features, trainIdx))
	if err != nil {
		return nil, fmt.Errorf("failed to fit scaler: %w", err)
	}
	xTest, err := scaler.Transform(selectRows(features, testIdx))
	if err != nil {
		return nil, fmt.Errorf("failed to scale test split: %w", err)
	}
	yTrain := selectValues(labels, trainIdx)
	yTest := selectValues(labels, testIdx)

	reg, err := FitLinearRegressor(xTrain, yTrain)
	if err != nil {
		return nil, fmt.Errorf("failed to fit regressor: %w", err)
	}

	predicted, err := reg.PredictAll(xTest)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate regressor: %w", err)
	}

	return &Bundle{
		Regressor:      *reg,
		Scaler:         scaler,
		Categories:     idx.clone(),
		Trained:        true,
		FeatureColumns: append([]string(nil), FeatureColumns...),
		RunID:          uuid.NewString(),
		TrainedAt:      m.now().UTC(),
		Metrics: Metrics{
			MSE:       stats.MeanSquaredError(yTest, predicted),
			R2:        stats.RSquared(yTest, predicted),
			TrainR2:   reg.TrainR2,
			TrainSize: len(trainIdx),
			TestSize:  len(testIdx),
			Records:   pulled,
			Synthetic: synthetic,
		},
	}, nil
}

func (m *Model) save(b *Bundle) {
	if m.path == "" {
		return
	}
	if err := SaveBundle(b, m.path); err != nil {
		m.logger.Warn("failed to save risk model", "path", m.path, "error", err)
		return
	}
	m.logger.Debug("risk model saved", "path", m.path)
}

// PredictRiskAreas scores the risk zones around a center point. It trains an
// untrained model first and falls back to DefaultRiskAreas on any failure, so
// callers always receive four areas.
func (m *Model) PredictRiskAreas(ctx context.Context, lat, lng float64, disease string) (areas []models.RiskArea) {
	defer func() {
		if p := recover(); p != nil {
			m.logger.Error("risk prediction panicked", "panic", p)
			areas = m.defaults(lat, lng)
		}
	}()

	if !m.IsTrained() {
		m.logger.Info("risk model not trained, training with available data")
		if !m.Train(ctx) {
			return m.defaults(lat, lng)
		}
	}

	areas, err := m.sampler.Sample(m.Snapshot(), lat, lng, disease, m.now())
	if err != nil {
		m.logger.Warn("risk prediction failed, using default areas",
			"lat", lat, "lng", lng, "disease", disease, "error", err)
		return m.defaults(lat, lng)
	}

	metrics.PredictionsTotal.WithLabelValues("model").Inc()
	return areas
}

func (m *Model) defaults(lat, lng float64) []models.RiskArea {
	metrics.PredictionsTotal.WithLabelValues("default").Inc()
	return m.sampler.Defaults(lat, lng)
}

// DefaultRiskAreas returns the fixed fallback areas around a center point
func DefaultRiskAreas(lat, lng float64) []models.RiskArea {
	return NewSampler(0).Defaults(lat, lng)
}
