// Package svm implements support vector machine classification
// compatible with scikit-learn's svm module.
package svm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rysato/gosvm/core/parallel"
	"github.com/rysato/gosvm/pkg/errors"
)

// KernelType identifies one of the supported kernel families.
// An unrecognized kernel never falls back to a default; it fails at
// parse or validation time.
type KernelType int

const (
	// KernelLinear is the plain inner product <x1, x2>.
	KernelLinear KernelType = iota
	// KernelPoly is (gamma*<x1, x2> + coef0)^degree.
	KernelPoly
	// KernelRBF is exp(-gamma*||x1 - x2||^2).
	KernelRBF
)

// String returns the scikit-learn name of the kernel type.
func (k KernelType) String() string {
	switch k {
	case KernelLinear:
		return "linear"
	case KernelPoly:
		return "poly"
	case KernelRBF:
		return "rbf"
	default:
		return "unknown"
	}
}

// ParseKernelType maps a scikit-learn style kernel name to its KernelType.
// Unrecognized names fail with UnsupportedKernelError; there is no default.
func ParseKernelType(name string) (KernelType, error) {
	switch name {
	case "linear":
		return KernelLinear, nil
	case "poly", "polynomial":
		return KernelPoly, nil
	case "rbf":
		return KernelRBF, nil
	default:
		return 0, errors.NewUnsupportedKernelError(name)
	}
}

// Kernel is a kernel family together with its hyperparameters.
// The zero value is the linear kernel. Kernel values are immutable and
// safe for concurrent use.
type Kernel struct {
	Type   KernelType
	Gamma  float64 // used by poly and rbf
	Degree int     // used by poly, must be a positive integer
	Coef0  float64 // used by poly
}

// Validate checks the hyperparameters against the kernel family.
func (k Kernel) Validate() error {
	switch k.Type {
	case KernelLinear:
		return nil
	case KernelPoly:
		if k.Degree < 1 {
			return errors.NewValidationError("degree", "must be a positive integer", k.Degree)
		}
		if k.Gamma <= 0 {
			return errors.NewValidationError("gamma", "must be positive", k.Gamma)
		}
		return nil
	case KernelRBF:
		if k.Gamma <= 0 {
			return errors.NewValidationError("gamma", "must be positive", k.Gamma)
		}
		return nil
	default:
		return errors.NewUnsupportedKernelError(k.Type.String())
	}
}

// Row count below which the kernel matrix is filled sequentially.
const gramParallelThreshold = 256

// Matrix computes the n1 x n2 matrix of kernel evaluations between the
// rows of X1 and the rows of X2. With X1 == X2 this is the Gram matrix
// of the sample set and is symmetric up to floating-point rounding.
//
// Entries are independent, so rows are filled in parallel; this does not
// affect the result.
func (k Kernel) Matrix(X1, X2 mat.Matrix) (*mat.Dense, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}

	n1, d1 := X1.Dims()
	n2, d2 := X2.Dims()
	if d1 != d2 {
		return nil, errors.NewDimensionError("Kernel.Matrix", d1, d2, 1)
	}
	if n1 == 0 || n2 == 0 {
		return nil, errors.NewModelError("Kernel.Matrix", "empty data", errors.ErrEmptyData)
	}

	// All three kernels start from the inner-product matrix X1 * X2^T.
	K := mat.NewDense(n1, n2, nil)
	K.Mul(X1, X2.T())

	switch k.Type {
	case KernelLinear:
		return K, nil

	case KernelPoly:
		parallel.ParallelizeWithThreshold(n1, gramParallelThreshold, func(start, end int) {
			for i := start; i < end; i++ {
				for j := 0; j < n2; j++ {
					K.Set(i, j, powi(k.Gamma*K.At(i, j)+k.Coef0, k.Degree))
				}
			}
		})
		return K, nil

	case KernelRBF:
		// ||a - b||^2 = ||a||^2 + ||b||^2 - 2<a, b>, so the pairwise
		// squared distances come from the inner products plus row norms.
		sq1 := rowSquaredNorms(X1)
		sq2 := rowSquaredNorms(X2)
		parallel.ParallelizeWithThreshold(n1, gramParallelThreshold, func(start, end int) {
			for i := start; i < end; i++ {
				for j := 0; j < n2; j++ {
					dist := sq1[i] + sq2[j] - 2*K.At(i, j)
					if dist < 0 {
						// Rounding can push a zero distance slightly negative.
						dist = 0
					}
					K.Set(i, j, math.Exp(-k.Gamma*dist))
				}
			}
		})
		return K, nil

	default:
		return nil, errors.NewUnsupportedKernelError(k.Type.String())
	}
}

// rowSquaredNorms returns the squared Euclidean norm of each row of X.
func rowSquaredNorms(X mat.Matrix) []float64 {
	n, d := X.Dims()
	norms := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < d; j++ {
			v := X.At(i, j)
			sum += v * v
		}
		norms[i] = sum
	}
	return norms
}

// powi raises base to a non-negative integer power by squaring.
func powi(base float64, times int) float64 {
	tmp := base
	ret := 1.0
	for t := times; t > 0; t /= 2 {
		if t%2 == 1 {
			ret *= tmp
		}
		tmp *= tmp
	}
	return ret
}
