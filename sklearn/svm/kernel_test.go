package svm

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/rysato/gosvm/pkg/errors"
)

// TestParseKernelType tests kernel name resolution
func TestParseKernelType(t *testing.T) {
	tests := []struct {
		name string
		want KernelType
	}{
		{"linear", KernelLinear},
		{"poly", KernelPoly},
		{"polynomial", KernelPoly},
		{"rbf", KernelRBF},
	}

	for _, tt := range tests {
		got, err := ParseKernelType(tt.name)
		if err != nil {
			t.Errorf("ParseKernelType(%q) returned error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKernelType(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestParseKernelType_Unknown tests that unknown kernel names are rejected
func TestParseKernelType_Unknown(t *testing.T) {
	_, err := ParseKernelType("unknown")
	if err == nil {
		t.Fatal("Expected error for unknown kernel name")
	}

	var kernelErr *errors.UnsupportedKernelError
	if !errors.As(err, &kernelErr) {
		t.Fatalf("Expected *UnsupportedKernelError, got %T: %v", err, err)
	}
	if kernelErr.Kernel != "unknown" {
		t.Errorf("Kernel = %q, want %q", kernelErr.Kernel, "unknown")
	}
}

// TestKernelValidate tests hyperparameter validation per kernel family
func TestKernelValidate(t *testing.T) {
	valid := []Kernel{
		{Type: KernelLinear},
		{Type: KernelPoly, Gamma: 0.5, Degree: 3, Coef0: 1},
		{Type: KernelRBF, Gamma: 2.0},
	}
	for _, k := range valid {
		if err := k.Validate(); err != nil {
			t.Errorf("Validate(%v) returned error: %v", k, err)
		}
	}

	invalid := []Kernel{
		{Type: KernelPoly, Gamma: 1.0, Degree: 0},
		{Type: KernelPoly, Gamma: 1.0, Degree: -2},
		{Type: KernelPoly, Gamma: 0, Degree: 3},
		{Type: KernelRBF, Gamma: 0},
		{Type: KernelRBF, Gamma: -1},
	}
	for _, k := range invalid {
		err := k.Validate()
		if err == nil {
			t.Errorf("Validate(%v) should fail", k)
			continue
		}
		var valErr *errors.ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("Expected *ValidationError for %v, got %T", k, err)
		}
	}
}

// TestKernelMatrix_LinearMatchesMatMul checks the linear kernel against
// an explicit matrix product.
func TestKernelMatrix_LinearMatchesMatMul(t *testing.T) {
	X1 := mat.NewDense(3, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
	})
	X2 := mat.NewDense(2, 2, []float64{
		0.5, -1,
		2, 0.25,
	})

	k := Kernel{Type: KernelLinear}
	K, err := k.Matrix(X1, X2)
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}

	var want mat.Dense
	want.Mul(X1, X2.T())

	r, c := K.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("Expected shape (3, 2), got (%d, %d)", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.Abs(K.At(i, j)-want.At(i, j)) > 1e-12 {
				t.Errorf("K[%d,%d] = %v, want %v", i, j, K.At(i, j), want.At(i, j))
			}
		}
	}
}

// TestKernelMatrix_Symmetry checks K(X, X) is symmetric for every family
func TestKernelMatrix_Symmetry(t *testing.T) {
	X := mat.NewDense(4, 3, []float64{
		1, 0, -2,
		0.5, 3, 1,
		-1, -1, 0,
		2, 0.25, 4,
	})

	kernels := []Kernel{
		{Type: KernelLinear},
		{Type: KernelPoly, Gamma: 0.5, Degree: 3, Coef0: 1},
		{Type: KernelRBF, Gamma: 0.7},
	}

	for _, k := range kernels {
		K, err := k.Matrix(X, X)
		if err != nil {
			t.Fatalf("Matrix failed for %v: %v", k.Type, err)
		}
		n, _ := K.Dims()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if math.Abs(K.At(i, j)-K.At(j, i)) > 1e-12 {
					t.Errorf("%v kernel: K[%d,%d] = %v != K[%d,%d] = %v",
						k.Type, i, j, K.At(i, j), j, i, K.At(j, i))
				}
			}
		}
	}
}

// TestKernelMatrix_RBFValues checks rbf entries against hand-computed values
func TestKernelMatrix_RBFValues(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{
		0, 0,
		1, 1,
	})

	k := Kernel{Type: KernelRBF, Gamma: 0.5}
	K, err := k.Matrix(X, X)
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}

	// Diagonal is exp(0) = 1, off-diagonal is exp(-0.5 * 2) = exp(-1)
	if math.Abs(K.At(0, 0)-1) > 1e-12 || math.Abs(K.At(1, 1)-1) > 1e-12 {
		t.Errorf("Expected unit diagonal, got %v, %v", K.At(0, 0), K.At(1, 1))
	}
	want := math.Exp(-1)
	if math.Abs(K.At(0, 1)-want) > 1e-12 {
		t.Errorf("K[0,1] = %v, want %v", K.At(0, 1), want)
	}
}

// TestKernelMatrix_PolyValues checks poly entries against hand-computed values
func TestKernelMatrix_PolyValues(t *testing.T) {
	X1 := mat.NewDense(1, 2, []float64{1, 1})
	X2 := mat.NewDense(1, 2, []float64{1, 1})

	k := Kernel{Type: KernelPoly, Gamma: 1.0, Degree: 2, Coef0: 1.0}
	K, err := k.Matrix(X1, X2)
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}

	// (1*2 + 1)^2 = 9
	if math.Abs(K.At(0, 0)-9) > 1e-12 {
		t.Errorf("K[0,0] = %v, want 9", K.At(0, 0))
	}
}

// TestKernelMatrix_CrossEvaluation checks X1 != X2 shapes
func TestKernelMatrix_CrossEvaluation(t *testing.T) {
	X1 := mat.NewDense(3, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
	})
	X2 := mat.NewDense(2, 2, []float64{
		1, 1,
		-1, -1,
	})

	k := Kernel{Type: KernelRBF, Gamma: 1.0}
	K, err := k.Matrix(X1, X2)
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}
	r, c := K.Dims()
	if r != 3 || c != 2 {
		t.Errorf("Expected shape (3, 2), got (%d, %d)", r, c)
	}
}

// TestKernelMatrix_FeatureMismatch tests mismatched feature dimensions
func TestKernelMatrix_FeatureMismatch(t *testing.T) {
	X1 := mat.NewDense(2, 3, nil)
	X2 := mat.NewDense(2, 2, nil)

	k := Kernel{Type: KernelLinear}
	_, err := k.Matrix(X1, X2)
	if err == nil {
		t.Fatal("Expected error for mismatched feature dimensions")
	}
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Errorf("Expected *DimensionError, got %T", err)
	}
}

func TestPowi(t *testing.T) {
	tests := []struct {
		base  float64
		times int
		want  float64
	}{
		{2, 0, 1},
		{2, 1, 2},
		{2, 5, 32},
		{-3, 3, -27},
		{0.5, 2, 0.25},
	}
	for _, tt := range tests {
		if got := powi(tt.base, tt.times); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("powi(%v, %d) = %v, want %v", tt.base, tt.times, got, tt.want)
		}
	}
}
