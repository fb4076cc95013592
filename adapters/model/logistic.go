package model

import (
	"context"
	"math"

	"fraudreport/domain/experiment"
	"fraudreport/ports"
)

// LogisticFitter fits a binary logistic regression over all input
// attributes by full-batch gradient descent. There are no swept
// hyperparameters; the optimizer settings are fixed and the fit is fully
// deterministic (zero-initialized weights, standardized inputs).
type LogisticFitter struct{}

const (
	logisticEpochs = 200
	logisticLR     = 0.1
)

// Family returns the fitter's family tag.
func (f *LogisticFitter) Family() experiment.ModelFamily {
	return experiment.FamilyLogistic
}

// Fit trains the model. The seed is accepted for interface uniformity but
// unused: the optimization has no random component.
func (f *LogisticFitter) Fit(ctx context.Context, features [][]float64, labels []int, cfg experiment.ModelConfig, seed int64) (ports.Classifier, error) {
	if err := validateTrainingData(features, labels); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := len(features)
	p := len(features[0])

	// Standardize attributes so one learning rate serves every column.
	means, stds := columnMoments(features)
	x := make([][]float64, n)
	for i := range x {
		x[i] = standardizeRow(features[i], means, stds)
	}

	w := make([]float64, p)
	b := 0.0
	for epoch := 0; epoch < logisticEpochs; epoch++ {
		gw := make([]float64, p)
		gb := 0.0
		for i := 0; i < n; i++ {
			z := b
			for j, v := range x[i] {
				z += w[j] * v
			}
			d := sigmoid(z) - float64(labels[i])
			for j, v := range x[i] {
				gw[j] += d * v
			}
			gb += d
		}
		scale := logisticLR / float64(n)
		for j := range w {
			w[j] -= scale * gw[j]
		}
		b -= scale * gb
	}

	return &logisticModel{weights: w, bias: b, means: means, stds: stds}, nil
}

type logisticModel struct {
	weights []float64
	bias    float64
	means   []float64
	stds    []float64
}

func (m *logisticModel) PredictProba(features [][]float64) []float64 {
	out := make([]float64, len(features))
	for i, row := range features {
		z := m.bias
		for j, v := range row {
			z += m.weights[j] * (v - m.means[j]) / m.stds[j]
		}
		out[i] = sigmoid(z)
	}
	return out
}

func (m *logisticModel) Predict(features [][]float64) []int {
	return hardLabels(m.PredictProba(features))
}

// columnMoments returns per-column mean and standard deviation, with zero
// variance columns mapped to std 1 so standardization stays defined.
func columnMoments(features [][]float64) (means, stds []float64) {
	n := float64(len(features))
	p := len(features[0])
	means = make([]float64, p)
	stds = make([]float64, p)
	for _, row := range features {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= n
	}
	for _, row := range features {
		for j, v := range row {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / n)
		if stds[j] == 0 {
			stds[j] = 1
		}
	}
	return means, stds
}

func standardizeRow(row, means, stds []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - means[j]) / stds[j]
	}
	return out
}
