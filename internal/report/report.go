// Package report assembles the presentation artifacts of a run: comparison
// tables, distribution summaries and tuning curves. Everything here is a
// pure function from computed results to a renderable structure; nothing in
// this package feeds back into the pipeline.
package report

import (
	"math"

	"github.com/montanaflynn/stats"

	"fraudreport/domain/dataset"
	"fraudreport/domain/experiment"
	"fraudreport/domain/run"
)

// Names of the training subsets compared throughout the report.
const (
	SubsetUndersampled = "undersampled"
	SubsetSubsampled   = "subsampled"
)

// ClassCount summarizes the class balance of one dataset or subset.
type ClassCount struct {
	Name       string  `json:"name"`
	Fraud      int     `json:"fraud"`
	Genuine    int     `json:"genuine"`
	FraudShare float64 `json:"fraud_share"`
}

// AmountSummary holds the descriptive statistics of the Amount attribute.
type AmountSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P95    float64 `json:"p95"`
}

// Bin is one bar of the amount histogram.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// SubsetResults holds the baseline cross-validated scores of every model
// family on one training subset.
type SubsetResults struct {
	Subset  string                `json:"subset"`
	Results []experiment.CVResult `json:"results"`
}

// TuningTable holds every evaluated candidate of one tuned family.
type TuningTable struct {
	Subset string                `json:"subset"`
	Family string                `json:"family"`
	Best   experiment.CVResult   `json:"best"`
	Rows   []experiment.CVResult `json:"rows"`
}

// Rate is a confusion-derived rate that may be undefined (zero denominator).
type Rate struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// HoldoutResult is the final evaluation of one tuned model.
type HoldoutResult struct {
	Family      string                     `json:"family"`
	Config      string                     `json:"config"`
	Matrix      experiment.ConfusionMatrix `json:"matrix"`
	Accuracy    Rate                       `json:"accuracy"`
	Sensitivity Rate                       `json:"sensitivity"`
	Specificity Rate                       `json:"specificity"`
	Precision   Rate                       `json:"precision"`
}

// Report is the complete renderable output of one analysis run.
type Report struct {
	Manifest     *run.Manifest   `json:"manifest"`
	Distribution []ClassCount    `json:"distribution"`
	Amount       AmountSummary   `json:"amount"`
	Histogram    []Bin           `json:"histogram"`
	Baseline     []SubsetResults `json:"baseline"`
	Tuning       []TuningTable   `json:"tuning"`
	Holdout      []HoldoutResult `json:"holdout"`
}

// NewClassCount summarizes one dataset's balance under a report name.
func NewClassCount(name string, ds *dataset.Dataset) ClassCount {
	fraud, genuine := ds.Counts()
	share := 0.0
	if total := fraud + genuine; total > 0 {
		share = float64(fraud) / float64(total)
	}
	return ClassCount{Name: name, Fraud: fraud, Genuine: genuine, FraudShare: share}
}

// NewAmountSummary computes descriptive statistics over amounts.
func NewAmountSummary(amounts []float64) (AmountSummary, error) {
	data := stats.Float64Data(amounts)
	min, err := data.Min()
	if err != nil {
		return AmountSummary{}, err
	}
	max, _ := data.Max()
	mean, _ := data.Mean()
	median, _ := data.Median()
	p95, _ := stats.Percentile(data, 95)
	return AmountSummary{Min: min, Max: max, Mean: mean, Median: median, P95: p95}, nil
}

// NewHistogram bins values into equal-width bins.
func NewHistogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins < 1 {
		return nil
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []Bin{{Low: min, High: max, Count: len(values)}}
	}

	width := (max - min) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Low: min + float64(i)*width, High: min + float64(i+1)*width}
	}
	for _, v := range values {
		idx := int(math.Floor((v - min) / width))
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// NewHoldoutResult derives the rate table from a confusion matrix, keeping
// undefined rates explicit instead of fabricating numbers.
func NewHoldoutResult(family, config string, m experiment.ConfusionMatrix) HoldoutResult {
	return HoldoutResult{
		Family:      family,
		Config:      config,
		Matrix:      m,
		Accuracy:    newRate(m.Accuracy()),
		Sensitivity: newRate(m.Sensitivity()),
		Specificity: newRate(m.Specificity()),
		Precision:   newRate(m.Precision()),
	}
}

func newRate(v float64, err error) Rate {
	if err != nil {
		return Rate{Defined: false}
	}
	return Rate{Value: v, Defined: true}
}
