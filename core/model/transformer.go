package model

import "gonum.org/v1/gonum/mat"

// Transformer は特徴量変換のインターフェース。
// StandardScalerなどの前処理コンポーネントが実装する。
type Transformer interface {
	// Fit は変換に必要な統計量を学習する
	Fit(X mat.Matrix) error

	// Transform は学習済みの統計量でデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを連続して実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// InverseTransformer は変換の逆写像を提供する変換器のインターフェース
type InverseTransformer interface {
	Transformer

	// InverseTransform は変換後のデータを元のスケールに戻す
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}
