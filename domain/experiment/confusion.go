package experiment

import (
	"fmt"

	"fraudreport/domain/core"
)

// ConfusionMatrix is the 2x2 count table of predicted vs actual labels for a
// fixed model applied to a fixed holdout set. Fraud is the positive class.
type ConfusionMatrix struct {
	TruePositive  int
	FalsePositive int
	TrueNegative  int
	FalseNegative int
}

// Total returns the number of scored records.
func (m ConfusionMatrix) Total() int {
	return m.TruePositive + m.FalsePositive + m.TrueNegative + m.FalseNegative
}

func (m ConfusionMatrix) rate(name string, num, den int) (float64, error) {
	if den == 0 {
		return 0, fmt.Errorf("%s: %w", name, core.ErrUndefinedRate)
	}
	return float64(num) / float64(den), nil
}

// Accuracy is the fraction of correct predictions.
func (m ConfusionMatrix) Accuracy() (float64, error) {
	return m.rate("accuracy", m.TruePositive+m.TrueNegative, m.Total())
}

// Sensitivity (recall) is the fraction of actual fraud predicted fraud.
func (m ConfusionMatrix) Sensitivity() (float64, error) {
	return m.rate("sensitivity", m.TruePositive, m.TruePositive+m.FalseNegative)
}

// Specificity is the fraction of actual genuine predicted genuine.
func (m ConfusionMatrix) Specificity() (float64, error) {
	return m.rate("specificity", m.TrueNegative, m.TrueNegative+m.FalsePositive)
}

// Precision is the fraction of predicted fraud that is actual fraud.
func (m ConfusionMatrix) Precision() (float64, error) {
	return m.rate("precision", m.TruePositive, m.TruePositive+m.FalsePositive)
}
