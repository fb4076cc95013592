package harness

import (
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"fraudreport/domain/core"
)

// AUC computes the area under the ROC curve for predicted fraud
// probabilities against actual labels (1 = fraud). Both classes must be
// present; a single-class slice is a degenerate fold, not a score.
func AUC(scores []float64, labels []int) (float64, error) {
	y := append([]float64(nil), scores...)
	classes := make([]bool, len(labels))
	positives := 0
	for i, lab := range labels {
		if lab == 1 {
			classes[i] = true
			positives++
		}
	}
	if positives == 0 || positives == len(labels) {
		return 0, core.ErrDegenerateFold
	}

	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}
