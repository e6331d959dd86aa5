package model

// EstimatorState は変換器・推定器の学習状態を表す
type EstimatorState int

const (
	// NotFitted は未学習の状態
	NotFitted EstimatorState = iota
	// Fitted は学習済みの状態
	Fitted
)

// BaseEstimator は前処理系コンポーネントの基底となる構造体。
// 埋め込みによりIsFitted/SetFitted/Resetを提供する。
// 分類器のようにスレッドセーフな状態管理が必要な場合はStateManagerを使う。
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted は学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted は学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset は初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
