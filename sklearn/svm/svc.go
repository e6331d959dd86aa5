package svm

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/rysato/gosvm/core/model"
	"github.com/rysato/gosvm/pkg/errors"
	"github.com/rysato/gosvm/pkg/log"
)

const (
	// Minimum change in a multiplier for an update to count as progress.
	alphaUpdateTol = 1e-5
	// Multipliers at or below this threshold are dropped after training.
	supportVectorTol = 1e-5
)

// SVC is a binary C-support vector classifier trained with a simplified
// Sequential Minimal Optimization procedure over a precomputed Gram matrix.
// Compatible with the shape of scikit-learn's SVC for the binary case.
//
// The partner index in each SMO step is chosen uniformly at random, so two
// fits agree only under a fixed random state. A single instance is not safe
// for concurrent Fit/Predict calls; serialize access externally.
type SVC struct {
	state *model.StateManager // State management (composition)

	// Hyperparameters
	kernel      string  // Kernel name: "linear", "poly", "rbf"
	c           float64 // Regularization bound, caps each multiplier
	gamma       float64 // Kernel coefficient for poly/rbf
	degree      int     // Polynomial degree
	coef0       float64 // Polynomial bias term
	tol         float64 // KKT violation tolerance
	maxIter     int     // Maximum number of outer passes
	randomState int64   // Seed for partner selection, -1 for nondeterministic

	// Trained state, replaced wholesale by every successful Fit
	fitted *fittedSVC
}

// fittedSVC is the complete trained state. Fit builds a fresh value and
// swaps it in at the end, so repeated fits never accumulate state and a
// half-finished fit never leaks into Predict.
type fittedSVC struct {
	kernel         Kernel
	supportVectors *mat.Dense // nSV x d block of retained samples
	alphas         []float64  // multipliers of the retained samples, in (supportVectorTol, C]
	labels         []float64  // normalized labels of the retained samples, in {-1, +1}
	intercept      float64
	classes        [2]float64 // original label values, classes[0] < classes[1]
	nFeatures      int
}

// SVCOption is a functional option for SVC.
type SVCOption func(*SVC)

// NewSVC creates a new SVC classifier.
func NewSVC(opts ...SVCOption) *SVC {
	m := &SVC{
		state:       model.NewStateManager(),
		kernel:      "rbf",
		c:           1.0,
		gamma:       1.0,
		degree:      3,
		coef0:       0.0,
		tol:         1e-3,
		maxIter:     100,
		randomState: -1,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithKernel sets the kernel name ("linear", "poly" or "rbf").
// The name is resolved at Fit time; an unknown name fails Fit.
func WithKernel(kernel string) SVCOption {
	return func(m *SVC) {
		m.kernel = kernel
	}
}

// WithC sets the regularization bound C.
func WithC(c float64) SVCOption {
	return func(m *SVC) {
		m.c = c
	}
}

// WithGamma sets the kernel coefficient for poly and rbf kernels.
func WithGamma(gamma float64) SVCOption {
	return func(m *SVC) {
		m.gamma = gamma
	}
}

// WithDegree sets the polynomial degree.
func WithDegree(degree int) SVCOption {
	return func(m *SVC) {
		m.degree = degree
	}
}

// WithCoef0 sets the polynomial bias term.
func WithCoef0(coef0 float64) SVCOption {
	return func(m *SVC) {
		m.coef0 = coef0
	}
}

// WithTol sets the KKT violation tolerance.
func WithTol(tol float64) SVCOption {
	return func(m *SVC) {
		m.tol = tol
	}
}

// WithMaxIter sets the bound on outer optimization passes.
func WithMaxIter(maxIter int) SVCOption {
	return func(m *SVC) {
		m.maxIter = maxIter
	}
}

// WithRandomState sets the seed for the random partner selection,
// making training reproducible. A negative seed keeps it nondeterministic.
func WithRandomState(seed int64) SVCOption {
	return func(m *SVC) {
		m.randomState = seed
	}
}

// buildKernel resolves the configured kernel name and hyperparameters.
func (m *SVC) buildKernel() (Kernel, error) {
	kt, err := ParseKernelType(m.kernel)
	if err != nil {
		return Kernel{}, err
	}
	k := Kernel{Type: kt, Gamma: m.gamma, Degree: m.degree, Coef0: m.coef0}
	if err := k.Validate(); err != nil {
		return Kernel{}, err
	}
	return k, nil
}

// newRNG returns the random source for one Fit call. Seeding per call keeps
// repeated fits with the same random state bit-identical.
func (m *SVC) newRNG() *rand.Rand {
	if m.randomState >= 0 {
		return rand.New(rand.NewSource(m.randomState))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

// Fit trains the classifier on X (n x d) and a column vector y of exactly
// two distinct label values. The numerically smaller label is mapped to -1,
// the larger to +1. All previously fitted state is replaced.
//
// Training stops early on a full pass with no multiplier changes; otherwise
// it stops after maxIter passes and emits a ConvergenceWarning. The solver
// is a best-effort heuristic, not an exact QP solver.
func (m *SVC) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "SVC.Fit")

	if m.c <= 0 {
		return errors.NewValidationError("C", "must be positive", m.c)
	}
	if m.tol <= 0 {
		return errors.NewValidationError("tol", "must be positive", m.tol)
	}
	if m.maxIter < 1 {
		return errors.NewValidationError("max_iter", "must be a positive integer", m.maxIter)
	}

	kernel, err := m.buildKernel()
	if err != nil {
		return err
	}

	n, d := X.Dims()
	yRows, yCols := y.Dims()
	if yCols != 1 {
		return errors.NewValueError("SVC.Fit", fmt.Sprintf("y must be a column vector, got shape (%d, %d)", yRows, yCols))
	}
	if yRows != n {
		return errors.NewDimensionError("SVC.Fit", n, yRows, 0)
	}
	if n < 2 {
		return errors.NewInvalidTrainingDataError("SVC.Fit", fmt.Sprintf("need at least 2 samples, got %d", n))
	}

	classes, yNorm, err := normalizeLabels(y, n)
	if err != nil {
		return err
	}

	// The full training Gram matrix is built once and only lives for the
	// duration of the optimization loop.
	K, err := kernel.Matrix(X, X)
	if err != nil {
		return err
	}

	alphas := make([]float64, n)
	b := 0.0
	rng := m.newRNG()

	// Decision-function error for sample i under the current multipliers.
	residual := func(i int) float64 {
		sum := b
		for k := 0; k < n; k++ {
			if alphas[k] > 0 {
				sum += alphas[k] * yNorm[k] * K.At(k, i)
			}
		}
		return sum - yNorm[i]
	}

	passes := 0
	converged := false
	for ; passes < m.maxIter; passes++ {
		changed := 0
		for i := 0; i < n; i++ {
			Ei := residual(i)

			// Only samples violating the KKT conditions are optimized.
			if !((yNorm[i]*Ei < -m.tol && alphas[i] < m.c) || (yNorm[i]*Ei > m.tol && alphas[i] > 0)) {
				continue
			}

			// Uniform random partner j != i. This replaces the second-choice
			// heuristic of full SMO.
			j := rng.Intn(n - 1)
			if j >= i {
				j++
			}
			Ej := residual(j)

			aiOld, ajOld := alphas[i], alphas[j]

			// Box bounds keeping both multipliers in [0, C] while preserving
			// the equality constraint.
			var low, high float64
			if yNorm[i] != yNorm[j] {
				low = math.Max(0, ajOld-aiOld)
				high = math.Min(m.c, m.c+ajOld-aiOld)
			} else {
				low = math.Max(0, aiOld+ajOld-m.c)
				high = math.Min(m.c, aiOld+ajOld)
			}
			if low == high {
				continue
			}

			eta := 2*K.At(i, j) - K.At(i, i) - K.At(j, j)
			if eta >= 0 {
				// Degenerate direction, no strict descent along this pair.
				continue
			}

			aj := errors.ClipValue(ajOld-yNorm[j]*(Ei-Ej)/eta, low, high)
			if math.Abs(aj-ajOld) < alphaUpdateTol {
				continue
			}
			ai := aiOld + yNorm[i]*yNorm[j]*(ajOld-aj)
			alphas[i], alphas[j] = ai, aj

			// Bias candidates from the KKT stationarity of the updated pair;
			// prefer the one whose multiplier is strictly inside the box.
			b1 := b - Ei - yNorm[i]*(ai-aiOld)*K.At(i, i) - yNorm[j]*(aj-ajOld)*K.At(i, j)
			b2 := b - Ej - yNorm[i]*(ai-aiOld)*K.At(i, j) - yNorm[j]*(aj-ajOld)*K.At(j, j)
			switch {
			case ai > 0 && ai < m.c:
				b = b1
			case aj > 0 && aj < m.c:
				b = b2
			default:
				b = (b1 + b2) / 2
			}

			changed++
		}

		if changed == 0 {
			converged = true
			passes++
			break
		}
	}

	if err := errors.CheckNumericalStability("smo_multipliers", alphas, passes); err != nil {
		return err
	}
	if err := errors.CheckScalar("smo_bias", b, passes); err != nil {
		return err
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("SVC", m.maxIter, ""))
	}

	// Keep only the support vectors; everything else is dropped for good.
	var svIdx []int
	for i, a := range alphas {
		if a > supportVectorTol {
			svIdx = append(svIdx, i)
		}
	}

	fitted := &fittedSVC{
		kernel:    kernel,
		alphas:    make([]float64, len(svIdx)),
		labels:    make([]float64, len(svIdx)),
		intercept: b,
		classes:   classes,
		nFeatures: d,
	}
	if len(svIdx) > 0 {
		fitted.supportVectors = mat.NewDense(len(svIdx), d, nil)
		for row, i := range svIdx {
			for col := 0; col < d; col++ {
				fitted.supportVectors.Set(row, col, X.At(i, col))
			}
			fitted.alphas[row] = alphas[i]
			fitted.labels[row] = yNorm[i]
		}
	}

	m.fitted = fitted
	m.state.SetDimensions(d, n)
	m.state.SetFitted()

	slog.Debug("training finished",
		slog.String(log.ModelNameKey, "SVC"),
		slog.String(log.OperationKey, log.OperationFit),
		slog.Int(log.SamplesKey, n),
		slog.Int(log.FeaturesKey, d),
		slog.Int(log.IterationKey, passes),
		slog.Int("n_support", len(svIdx)),
		slog.Bool("converged", converged),
	)
	return nil
}

// normalizeLabels checks that y holds exactly two distinct values and maps
// them to {-1, +1}, the numerically smaller value becoming -1.
func normalizeLabels(y mat.Matrix, n int) ([2]float64, []float64, error) {
	first := y.At(0, 0)
	second := first
	haveSecond := false
	for i := 1; i < n; i++ {
		v := y.At(i, 0)
		if v == first {
			continue
		}
		if !haveSecond {
			second = v
			haveSecond = true
			continue
		}
		if v != second {
			return [2]float64{}, nil, errors.NewInvalidTrainingDataError("SVC.Fit",
				"y must contain exactly 2 classes, got more")
		}
	}
	if !haveSecond {
		return [2]float64{}, nil, errors.NewInvalidTrainingDataError("SVC.Fit",
			"y must contain exactly 2 classes, got 1")
	}

	neg, pos := first, second
	if neg > pos {
		neg, pos = pos, neg
	}

	yNorm := make([]float64, n)
	for i := 0; i < n; i++ {
		if y.At(i, 0) == neg {
			yNorm[i] = -1
		} else {
			yNorm[i] = 1
		}
	}
	return [2]float64{neg, pos}, yNorm, nil
}

// DecisionFunction returns the signed distance surrogate for each row of X:
// the kernel expansion over the retained support vectors plus the bias.
func (m *SVC) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	if !m.state.IsFitted() {
		return nil, errors.NewNotFittedError("SVC", "DecisionFunction")
	}

	n, d := X.Dims()
	if d != m.fitted.nFeatures {
		return nil, errors.NewDimensionError("SVC.DecisionFunction", m.fitted.nFeatures, d, 1)
	}

	scores := mat.NewVecDense(n, nil)
	f := m.fitted
	if f.supportVectors == nil {
		// No support vectors survived training; the decision surface is
		// the constant bias.
		for i := 0; i < n; i++ {
			scores.SetVec(i, f.intercept)
		}
		return scores, nil
	}

	K, err := f.kernel.Matrix(X, f.supportVectors)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		sum := f.intercept
		for s := range f.alphas {
			sum += f.alphas[s] * f.labels[s] * K.At(i, s)
		}
		scores.SetVec(i, sum)
	}
	return scores, nil
}

// Predict returns the sign of the decision function for each row of X as an
// n x 1 matrix with entries in {-1, 0, +1}. A 0 marks a sample exactly on
// the decision boundary.
func (m *SVC) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !m.state.IsFitted() {
		return nil, errors.NewNotFittedError("SVC", "Predict")
	}

	scores, err := m.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	n := scores.Len()
	predictions := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		predictions.Set(i, 0, sign(scores.AtVec(i)))
	}
	return predictions, nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Score returns the mean accuracy of Predict against y. Labels in y may be
// the original two values seen at Fit time or already normalized to -1/+1.
func (m *SVC) Score(X, y mat.Matrix) (float64, error) {
	if !m.state.IsFitted() {
		return 0, errors.NewNotFittedError("SVC", "Score")
	}

	predictions, err := m.Predict(X)
	if err != nil {
		return 0, err
	}

	n, _ := y.Dims()
	if n == 0 {
		return 0, errors.NewValueError("SVC.Score", "empty target vector")
	}

	correct := 0
	for i := 0; i < n; i++ {
		want := y.At(i, 0)
		// Map original labels onto the normalized domain.
		switch want {
		case m.fitted.classes[0]:
			want = -1
		case m.fitted.classes[1]:
			want = 1
		}
		if predictions.At(i, 0) == want {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// Classes returns the original label values seen during fitting,
// sorted ascending. The first maps to prediction -1, the second to +1.
func (m *SVC) Classes() []float64 {
	if !m.state.IsFitted() {
		return nil
	}
	return []float64{m.fitted.classes[0], m.fitted.classes[1]}
}

// SupportVectors returns the retained support vectors as an nSV x d matrix,
// or nil if the model is unfitted or kept no support vectors.
func (m *SVC) SupportVectors() *mat.Dense {
	if !m.state.IsFitted() {
		return nil
	}
	return m.fitted.supportVectors
}

// DualCoef returns alpha_i * y_i for each retained support vector.
func (m *SVC) DualCoef() []float64 {
	if !m.state.IsFitted() {
		return nil
	}
	coef := make([]float64, len(m.fitted.alphas))
	for i := range coef {
		coef[i] = m.fitted.alphas[i] * m.fitted.labels[i]
	}
	return coef
}

// Alphas returns the retained Lagrange multipliers.
func (m *SVC) Alphas() []float64 {
	if !m.state.IsFitted() {
		return nil
	}
	out := make([]float64, len(m.fitted.alphas))
	copy(out, m.fitted.alphas)
	return out
}

// Intercept returns the bias term of the decision function.
func (m *SVC) Intercept() float64 {
	if !m.state.IsFitted() {
		return 0
	}
	return m.fitted.intercept
}

// NSupport returns the number of retained support vectors.
func (m *SVC) NSupport() int {
	if !m.state.IsFitted() {
		return 0
	}
	return len(m.fitted.alphas)
}

// GetParams returns the model hyperparameters.
func (m *SVC) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"kernel":       m.kernel,
		"C":            m.c,
		"gamma":        m.gamma,
		"degree":       m.degree,
		"coef0":        m.coef0,
		"tol":          m.tol,
		"max_iter":     m.maxIter,
		"random_state": m.randomState,
	}
}

// SetParams sets the model hyperparameters.
func (m *SVC) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		switch key {
		case "kernel":
			m.kernel = value.(string)
		case "C":
			m.c = value.(float64)
		case "gamma":
			m.gamma = value.(float64)
		case "degree":
			m.degree = value.(int)
		case "coef0":
			m.coef0 = value.(float64)
		case "tol":
			m.tol = value.(float64)
		case "max_iter":
			m.maxIter = value.(int)
		case "random_state":
			m.randomState = value.(int64)
		default:
			return errors.NewValueError("SVC.SetParams", fmt.Sprintf("unknown parameter: %s", key))
		}
	}
	return nil
}
