// Package gosvm provides support vector machine classification for Go,
// designed for backend services and real-time inference applications.
//
// gosvm offers a scikit-learn-like API that makes it easy for engineers
// familiar with Python's ecosystem to train and serve SVM classifiers in Go.
//
// # Features
//
// - Binary classification with linear, polynomial and RBF kernels
// - Sequential minimal optimization over a precomputed kernel matrix
// - scikit-learn-like API: Fit, Predict, DecisionFunction, Score
// - Robust error handling with typed errors and convergence warnings
// - CPU-parallel kernel matrix evaluation for large datasets
//
// # Installation
//
// Install gosvm using go get:
//
//	go get github.com/rysato/gosvm
//
// # Quick Start
//
// Here's a simple example of training a classifier:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/rysato/gosvm/sklearn/svm"
//	)
//
//	func main() {
//	    // Two clusters with labels -1 and +1
//	    X := mat.NewDense(4, 2, []float64{
//	        0, 0,
//	        1, 0,
//	        5, 5,
//	        6, 5,
//	    })
//	    y := mat.NewDense(4, 1, []float64{-1, -1, 1, 1})
//
//	    clf := svm.NewSVC(svm.WithKernel("linear"), svm.WithRandomState(42))
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := clf.Predict(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Formatted(pred))
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - sklearn/svm: support vector classification and kernel functions
//   - sklearn/model_selection: dataset splitting utilities
//   - preprocessing: data preprocessing utilities
//   - metrics: classification metrics
//   - core/model: core interfaces and fitted-state management
//   - core/parallel: parallel processing utilities
//   - pkg/errors: typed errors and the warning system
//   - pkg/log: structured logging helpers
//
// # Hyperparameters
//
// SVC is configured through functional options:
//
//	clf := svm.NewSVC(
//	    svm.WithKernel("rbf"),
//	    svm.WithC(1.0),
//	    svm.WithGamma(0.5),
//	    svm.WithMaxIter(200),
//	    svm.WithRandomState(42),
//	)
//
// # Performance
//
// Kernel matrix evaluation parallelizes across CPU cores for large
// datasets, while training itself stays sequential for reproducibility.
package gosvm
