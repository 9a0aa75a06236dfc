package risk

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
)

// Metrics describes how a bundle was fitted
type Metrics struct {
	MSE       float64 `json:"mse"`
	R2        float64 `json:"r2"`
	TrainR2   float64 `json:"train_r2"` // Fit on the training split
	TrainSize int     `json:"train_size"`
	TestSize  int     `json:"test_size"`
	Records   int     `json:"records"`   // Records pulled from the record source
	Synthetic int     `json:"synthetic"` // Filler records added before fitting
}

// Bundle is the complete fitted state of the risk model. A published bundle
// is never mutated; retraining builds a new one.
type Bundle struct {
	Regressor      LinearRegressor
	Scaler         StandardScaler
	Categories     CategoryIndex
	Trained        bool
	FeatureColumns []string
	RunID          string
	TrainedAt      time.Time
	Metrics        Metrics
}

// Score predicts the clamped risk score of a single record
func (b *Bundle) Score(r models.OccurrenceRecord) (float64, error) {
	if b == nil || !b.Trained {
		return 0, ErrNotTrained
	}

	rows, err := BuildFeatures([]models.OccurrenceRecord{r}, &b.Categories)
	if err != nil {
		return 0, err
	}

	scaled, err := b.Scaler.Transform(rows)
	if err != nil {
		return 0, err
	}

	return b.Regressor.PredictScore(scaled[0])
}

func (b *Bundle) validate() error {
	if !b.Trained {
		return ErrNotTrained
	}
	if len(b.FeatureColumns) != NumFeatures ||
		len(b.Scaler.Mean) != NumFeatures ||
		len(b.Scaler.Scale) != NumFeatures ||
		len(b.Regressor.Weights) != NumFeatures {
		return fmt.Errorf("%w: bundle does not match %d feature columns", ErrDimensionMismatch, NumFeatures)
	}
	for i, c := range FeatureColumns {
		if b.FeatureColumns[i] != c {
			return fmt.Errorf("%w: column %d is %q, expected %q", ErrDimensionMismatch, i, b.FeatureColumns[i], c)
		}
	}
	if !b.Categories.Fitted() {
		return fmt.Errorf("bundle has an empty category index")
	}
	return nil
}

// SaveBundle writes b to path as a single gob blob, replacing any existing file
func SaveBundle(b *Bundle, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp model file: %w", err)
	}
	tmpName := tmp.Name()

	if err := gob.NewEncoder(tmp).Encode(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to encode model bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp model file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace model file: %w", err)
	}

	return nil
}

// LoadBundle reads a bundle written by SaveBundle
func LoadBundle(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var b Bundle
	if err := gob.NewDecoder(f).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode model bundle: %w", err)
	}
	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("invalid model bundle: %w", err)
	}

	b.Categories = b.Categories.clone()
	return &b, nil
}
