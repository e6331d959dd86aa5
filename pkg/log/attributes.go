// Package log provides structured logging helpers for machine learning
// operations. This file defines the standard attribute keys used across the
// library so that logs remain uniform and easy to filter.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model emitting the log.
	// Examples: "SVC", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score"
	OperationKey = "ml.operation"
)

// Data shape.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"
)

// Training progress.
const (
	// IterationKey records the current pass number of an iterative solver.
	IterationKey = "training.iteration"

	// AccuracyKey records classification accuracy for evaluation operations.
	AccuracyKey = "metrics.accuracy"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Standard operation values.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"
)
