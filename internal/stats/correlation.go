package stats

// MeanSquaredError calculates the mean squared error between actual and predicted values
func MeanSquaredError(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	var sumSquaredError float64
	for i := 0; i < len(actual); i++ {
		e := actual[i] - predicted[i]
		sumSquaredError += e * e
	}

	return sumSquaredError / float64(len(actual))
}

// RSquared calculates the coefficient of determination of predicted against actual.
// A constant actual series scores 1 for a perfect fit and 0 otherwise.
func RSquared(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	mean := Mean(actual)
	var ssRes, ssTot float64
	for i := 0; i < len(actual); i++ {
		r := actual[i] - predicted[i]
		d := actual[i] - mean
		ssRes += r * r
		ssTot += d * d
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}

	return 1 - ssRes/ssTot
}
