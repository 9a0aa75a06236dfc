package risk

import (
	"fmt"

	"github.com/jengzang/disease-risk-backend-go/internal/stats"
)

// StandardScaler centers each column on its mean and divides by its
// population standard deviation. Constant columns keep scale 1.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// Fit computes per-column statistics from rows
func (s *StandardScaler) Fit(rows [][]float64) error {
	if len(rows) == 0 {
		return ErrNoRecords
	}

	width := len(rows[0])
	s.Mean = make([]float64, width)
	s.Scale = make([]float64, width)
	for j := 0; j < width; j++ {
		col := stats.Column(rows, j)
		s.Mean[j] = stats.Mean(col)
		std := stats.PopulationStdDev(col)
		if std == 0 {
			std = 1
		}
		s.Scale[j] = std
	}

	return nil
}

// Transform returns a scaled copy of rows
func (s *StandardScaler) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("%w: row %d has %d columns, scaler fitted on %d", ErrDimensionMismatch, i, len(row), len(s.Mean))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits the scaler and transforms the same rows
func (s *StandardScaler) FitTransform(rows [][]float64) ([][]float64, error) {
	if err := s.Fit(rows); err != nil {
		return nil, err
	}
	return s.Transform(rows)
}
