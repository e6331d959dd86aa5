package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "gosvm: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "gosvm: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			// ModelError型にキャスト可能か確認
			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 10, 10, 0)

	// 基本的なエラーメッセージの確認
	want := "gosvm: Predict: dimension mismatch on axis 0 (rows). Expected 10, got 10"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// DimensionError型にキャスト可能か確認
	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("SVC", "Predict")

	// 基本的なエラーメッセージの確認
	want := "gosvm: SVC: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// NotFittedError型にキャスト可能か確認
	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewUnsupportedKernelError(t *testing.T) {
	err := NewUnsupportedKernelError("unknown")

	if !strings.Contains(err.Error(), `unsupported kernel "unknown"`) {
		t.Errorf("unexpected message: %v", err.Error())
	}

	// UnsupportedKernelError型にキャスト可能か確認
	var kernelErr *UnsupportedKernelError
	if !As(err, &kernelErr) {
		t.Error("Error should be castable to *UnsupportedKernelError")
	}
	if kernelErr.Kernel != "unknown" {
		t.Errorf("Kernel = %q, want %q", kernelErr.Kernel, "unknown")
	}

	// スタックトレースの存在確認
	formatted := fmt.Sprintf("%+v", err)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected stack trace to contain test file name")
	}
}

func TestNewInvalidTrainingDataError(t *testing.T) {
	err := NewInvalidTrainingDataError("SVC.Fit", "y must contain exactly 2 classes, got 1")

	want := "gosvm: SVC.Fit: invalid training data: y must contain exactly 2 classes, got 1"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// InvalidTrainingDataError型にキャスト可能か確認
	var dataErr *InvalidTrainingDataError
	if !As(err, &dataErr) {
		t.Error("Error should be castable to *InvalidTrainingDataError")
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("SetParam", "C: -0.5 (must be positive)")

	want := "gosvm: SetParam: C: -0.5 (must be positive)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// ValueError型にキャスト可能か確認
	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestNewConvergenceWarning(t *testing.T) {
	warn := NewConvergenceWarning("SMO", 1000, "no zero-change pass reached")

	// 基本的なエラーメッセージの確認
	want := "SMO failed to converge after 1000 iterations: no zero-change pass reached"
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}

	var convWarn *ConvergenceWarning
	if !As(warn, &convWarn) {
		t.Error("Warning should be castable to *ConvergenceWarning")
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) {
		captured = w
	})
	defer SetWarningHandler(nil)

	warn := NewConvergenceWarning("SMO", 10, "")
	Warn(warn)

	if captured == nil {
		t.Fatal("Expected warning handler to be called")
	}
	if !Is(captured, warn) {
		t.Error("Expected captured warning to be the emitted one")
	}
}

func TestWrapf(t *testing.T) {
	// 元のエラー
	baseErr := ErrEmptyData

	// フォーマット付きラップ
	wrapped := Wrapf(baseErr, "in %s: expected %d, got %d", "Predict", 10, 5)

	// Is関数でチェック
	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	// エラーメッセージの確認
	expectedMsg := "in Predict: expected 10, got 5"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	// エラーチェーンの作成
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	// チェーン全体を確認
	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	// スタックトレースの確認（詳細表示）
	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
