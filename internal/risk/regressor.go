package risk

import (
	"fmt"
	"math"

	"github.com/sajari/regression"
	"gonum.org/v1/gonum/floats"

	"github.com/jengzang/disease-risk-backend-go/internal/stats"
)

// LinearRegressor is an ordinary least squares model over scaled feature rows
type LinearRegressor struct {
	Intercept float64
	Weights   []float64 // One per feature column, 0 for columns left out of the fit
	TrainR2   float64
}

// FitLinearRegressor fits y ~ rows. Columns that are constant across rows
// carry no signal and would make the design matrix singular, so they are
// left out and keep weight 0.
func FitLinearRegressor(rows [][]float64, targets []float64) (*LinearRegressor, error) {
	if len(rows) == 0 {
		return nil, ErrNoRecords
	}
	if len(rows) != len(targets) {
		return nil, fmt.Errorf("%w: %d rows, %d targets", ErrDimensionMismatch, len(rows), len(targets))
	}

	width := len(rows[0])
	active := make([]int, 0, width)
	for j := 0; j < width; j++ {
		col := stats.Column(rows, j)
		if floats.Max(col)-floats.Min(col) > 1e-12 {
			active = append(active, j)
		}
	}

	model := &LinearRegressor{Weights: make([]float64, width)}

	if len(active) == 0 {
		model.Intercept = stats.Mean(targets)
		return model, nil
	}
	if len(rows) < len(active)+1 {
		return nil, fmt.Errorf("%w: %d rows for %d varying features", ErrInsufficientData, len(rows), len(active))
	}

	r := new(regression.Regression)
	r.SetObserved("risk_score")
	for i, j := range active {
		r.SetVar(i, columnName(j))
	}

	for k, row := range rows {
		vars := make([]float64, len(active))
		for i, j := range active {
			vars[i] = row[j]
		}
		r.Train(regression.DataPoint(targets[k], vars))
	}

	if err := r.Run(); err != nil {
		return nil, fmt.Errorf("failed to run regression: %w", err)
	}

	coeffs := r.GetCoeffs()
	if len(coeffs) != len(active)+1 {
		return nil, fmt.Errorf("%w: got %d coefficients for %d features", ErrDegenerateFit, len(coeffs), len(active))
	}
	for _, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, ErrDegenerateFit
		}
	}

	model.Intercept = coeffs[0]
	for i, j := range active {
		model.Weights[j] = coeffs[i+1]
	}
	model.TrainR2 = r.R2

	return model, nil
}

// Predict returns the raw regression output for one scaled row
func (m *LinearRegressor) Predict(row []float64) (float64, error) {
	if len(row) != len(m.Weights) {
		return 0, fmt.Errorf("%w: row has %d columns, model has %d", ErrDimensionMismatch, len(row), len(m.Weights))
	}
	return m.Intercept + floats.Dot(m.Weights, row), nil
}

// PredictScore returns the prediction clamped to a valid risk score
func (m *LinearRegressor) PredictScore(row []float64) (float64, error) {
	v, err := m.Predict(row)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return 0, ErrDegenerateFit
	}
	return stats.Clamp(v, 0, 1), nil
}

// PredictAll returns raw predictions for every row
func (m *LinearRegressor) PredictAll(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		v, err := m.Predict(row)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func columnName(j int) string {
	if j < len(FeatureColumns) {
		return FeatureColumns[j]
	}
	return fmt.Sprintf("x%d", j)
}
