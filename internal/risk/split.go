package risk

import (
	"math"
	"math/rand/v2"
)

// SplitSeed fixes the train/test shuffle so repeated fits on the same data agree
const SplitSeed = 42

// TrainTestSplit shuffles indices 0..n-1 and returns the train and test parts.
// The test part holds ceil(n*testFraction) indices and is never empty for n >= 2.
func TrainTestSplit(n int, testFraction float64, seed uint64) (train, test []int, err error) {
	if n < 2 {
		return nil, nil, ErrInsufficientData
	}

	nTest := int(math.Ceil(float64(n) * testFraction))
	if nTest < 1 {
		nTest = 1
	}
	if nTest >= n {
		return nil, nil, ErrInsufficientData
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	return perm[nTest:], perm[:nTest], nil
}

func selectRows(rows [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, k := range idx {
		out[i] = rows[k]
	}
	return out
}

func selectValues(values []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, k := range idx {
		out[i] = values[k]
	}
	return out
}
