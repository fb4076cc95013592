package ports

import (
	"context"

	"fraudreport/domain/experiment"
)

// Classifier is a trained model. Implementations are immutable after Fit and
// safe for concurrent prediction.
type Classifier interface {
	// PredictProba returns P(fraud) per input row, each in [0,1].
	PredictProba(features [][]float64) []float64

	// Predict returns hard labels (1 = fraud) at the 0.5 threshold.
	Predict(features [][]float64) []int
}

// ClassifierFitter is the opaque fitting capability of one model family.
// Labels are ints with fraud encoded as 1. Fitters must be deterministic for
// a fixed seed and must not retain references to the training data.
type ClassifierFitter interface {
	Family() experiment.ModelFamily
	Fit(ctx context.Context, features [][]float64, labels []int, cfg experiment.ModelConfig, seed int64) (Classifier, error)
}
