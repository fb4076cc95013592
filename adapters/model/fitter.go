// Package model provides one concrete classifier fitter per algorithm
// family. Each fitter is deterministic for a fixed seed, holds no state
// between calls, and returns an immutable trained classifier.
package model

import (
	"errors"
	"math"

	"fraudreport/domain/core"
	"fraudreport/domain/experiment"
	"fraudreport/ports"
)

// ForFamily selects the fitter for a model family tag.
func ForFamily(family experiment.ModelFamily) (ports.ClassifierFitter, error) {
	switch family {
	case experiment.FamilyLogistic:
		return &LogisticFitter{}, nil
	case experiment.FamilyDecisionTree:
		return &DecisionTreeFitter{}, nil
	case experiment.FamilyRandomForest:
		return &RandomForestFitter{}, nil
	case experiment.FamilyGradientBoosting:
		return &GradientBoostingFitter{}, nil
	default:
		return nil, core.ErrUnknownFamily
	}
}

// validateTrainingData rejects inputs no fitter can learn from.
func validateTrainingData(features [][]float64, labels []int) error {
	if len(features) == 0 {
		return core.ErrEmptyDataset
	}
	if len(features) != len(labels) {
		return errors.New("features and labels length mismatch")
	}
	p := len(features[0])
	for _, row := range features {
		if len(row) != p {
			return core.ErrSchemaMismatch
		}
	}
	first := labels[0]
	for _, lab := range labels[1:] {
		if lab != first {
			return nil
		}
	}
	return core.ErrDegenerateFold
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	// Numerically stable branch for large negative z.
	e := math.Exp(z)
	return e / (1 + e)
}

// hardLabels applies the fixed 0.5 decision threshold.
func hardLabels(probas []float64) []int {
	out := make([]int, len(probas))
	for i, p := range probas {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}
