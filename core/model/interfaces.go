// Package model provides additional interfaces and types for machine learning models.
// This file complements the existing interfaces in estimator.go and transformer.go
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns a goodness-of-fit score for the prediction,
	// mean accuracy for classifiers.
	Score(X mat.Matrix, y mat.Matrix) (float64, error)
}

// Classifier combines interfaces for classification models.
type Classifier interface {
	Fitter
	Predictor
	Scorer

	// Classes returns the unique class labels seen during fitting.
	Classes() []float64
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	// SetParams sets the model's hyperparameters.
	SetParams(params map[string]interface{}) error
}
