package model_selection

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func makeDataset(n int) (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(2*i))
		if i%2 == 0 {
			y.Set(i, 0, -1)
		} else {
			y.Set(i, 0, 1)
		}
	}
	return X, y
}

func TestTrainTestSplit_Sizes(t *testing.T) {
	X, y := makeDataset(10)

	XTrain, XTest, yTrain, yTest, err := TrainTestSplit(X, y, 0.3, 0)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	trainRows, _ := XTrain.Dims()
	testRows, _ := XTest.Dims()
	if trainRows != 7 || testRows != 3 {
		t.Errorf("Expected 7/3 split, got %d/%d", trainRows, testRows)
	}

	yTrainRows, _ := yTrain.Dims()
	yTestRows, _ := yTest.Dims()
	if yTrainRows != trainRows || yTestRows != testRows {
		t.Error("Labels must follow the same partition as features")
	}
}

func TestTrainTestSplit_RowsStayPaired(t *testing.T) {
	X, y := makeDataset(20)

	XTrain, XTest, yTrain, yTest, err := TrainTestSplit(X, y, 0.25, 42)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	// Sample i was built with X[i][0] = i and y[i] = -1 for even i,
	// so feature/label pairing is verifiable after shuffling.
	check := func(Xp, yp *mat.Dense) {
		rows, _ := Xp.Dims()
		for i := 0; i < rows; i++ {
			idx := int(Xp.At(i, 0))
			want := 1.0
			if idx%2 == 0 {
				want = -1.0
			}
			if yp.At(i, 0) != want {
				t.Errorf("Row %d: label %v does not match original sample %d", i, yp.At(i, 0), idx)
			}
		}
	}
	check(XTrain, yTrain)
	check(XTest, yTest)
}

func TestTrainTestSplit_Deterministic(t *testing.T) {
	X, y := makeDataset(12)

	XTrain1, _, _, _, err := TrainTestSplit(X, y, 0.25, 7)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}
	XTrain2, _, _, _, err := TrainTestSplit(X, y, 0.25, 7)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	if !mat.Equal(XTrain1, XTrain2) {
		t.Error("Same seed should produce the same partition")
	}
}

func TestTrainTestSplit_InvalidArguments(t *testing.T) {
	X, y := makeDataset(4)

	if _, _, _, _, err := TrainTestSplit(X, y, 0, 0); err == nil {
		t.Error("Expected error for test_size = 0")
	}
	if _, _, _, _, err := TrainTestSplit(X, y, 1, 0); err == nil {
		t.Error("Expected error for test_size = 1")
	}

	yBad := mat.NewDense(3, 1, nil)
	if _, _, _, _, err := TrainTestSplit(X, yBad, 0.5, 0); err == nil {
		t.Error("Expected error for mismatched rows")
	}
}
