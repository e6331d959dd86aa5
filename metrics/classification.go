// Package metrics は分類モデルの評価指標を提供します。
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/rysato/gosvm/pkg/errors"
)

// Accuracy は正解率（Accuracy）を計算する
//
// Accuracy = 正しく分類されたサンプル数 / 全サンプル数
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	// 入力検証
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}

	return float64(correct) / float64(n), nil
}

// AccuracyMatrix は行列形式の入力（n×1）に対して正解率を計算する
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	// 入力検証
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewValueError("AccuracyMatrix", "empty matrix")
	}

	if rTrue != rPred || cTrue != cPred {
		return 0, errors.NewDimensionError("AccuracyMatrix", rTrue, rPred, 0)
	}

	if cTrue != 1 {
		return 0, errors.NewValueError("AccuracyMatrix", "must be a column vector (n×1 matrix)")
	}

	// VecDenseに変換してAccuracyを計算
	yTrueVec := mat.NewVecDense(rTrue, nil)
	yPredVec := mat.NewVecDense(rPred, nil)

	for i := 0; i < rTrue; i++ {
		yTrueVec.SetVec(i, yTrue.At(i, 0))
		yPredVec.SetVec(i, yPred.At(i, 0))
	}

	return Accuracy(yTrueVec, yPredVec)
}

// ClassificationError は誤分類率（1 - Accuracy）を計算する
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}
