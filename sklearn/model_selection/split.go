// Package model_selection provides utilities for splitting datasets,
// compatible with scikit-learn's model_selection module.
package model_selection

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/rysato/gosvm/pkg/errors"
)

// TrainTestSplit shuffles the samples of X and y together and splits them
// into train and test partitions. testSize is the fraction of samples
// assigned to the test partition, in (0, 1). A non-negative randomSeed
// makes the shuffle deterministic.
func TrainTestSplit(X, y mat.Matrix, testSize float64, randomSeed int64) (XTrain, XTest, yTrain, yTest *mat.Dense, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}

	n, d := X.Dims()
	yRows, yCols := y.Dims()
	if yRows != n {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", n, yRows, 0)
	}
	if yCols != 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "y must be a column vector")
	}

	nTest := int(float64(n) * testSize)
	if nTest < 1 {
		nTest = 1
	}
	nTrain := n - nTest
	if nTrain < 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "not enough samples to split")
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	var rng *rand.Rand
	if randomSeed >= 0 {
		rng = rand.New(rand.NewSource(randomSeed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	XTrain = extractRows(X, indices[:nTrain], d)
	XTest = extractRows(X, indices[nTrain:], d)
	yTrain = extractRows(y, indices[:nTrain], 1)
	yTest = extractRows(y, indices[nTrain:], 1)
	return XTrain, XTest, yTrain, yTest, nil
}

// extractRows gathers the given rows of m into a new dense matrix.
func extractRows(m mat.Matrix, rows []int, cols int) *mat.Dense {
	out := mat.NewDense(len(rows), cols, nil)
	for r, idx := range rows {
		for c := 0; c < cols; c++ {
			out.Set(r, c, m.At(idx, c))
		}
	}
	return out
}
