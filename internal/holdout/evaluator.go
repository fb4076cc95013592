package holdout

import (
	"fraudreport/domain/core"
	"fraudreport/domain/dataset"
	"fraudreport/domain/experiment"
	"fraudreport/ports"
)

// Evaluate applies a trained model to the untouched holdout set and builds
// the 2x2 confusion matrix from hard predictions at the fixed 0.5 threshold.
// A pure single-pass function of (model, testSet).
func Evaluate(model ports.Classifier, testSet *dataset.Dataset) (experiment.ConfusionMatrix, error) {
	if testSet == nil || testSet.Len() == 0 {
		return experiment.ConfusionMatrix{}, core.ErrEmptyDataset
	}

	predicted := model.Predict(testSet.FeatureMatrix())
	actual := testSet.LabelVector()

	var m experiment.ConfusionMatrix
	for i, pred := range predicted {
		switch {
		case pred == 1 && actual[i] == 1:
			m.TruePositive++
		case pred == 1 && actual[i] == 0:
			m.FalsePositive++
		case pred == 0 && actual[i] == 0:
			m.TrueNegative++
		default:
			m.FalseNegative++
		}
	}
	return m, nil
}
