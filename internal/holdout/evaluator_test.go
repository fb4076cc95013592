package holdout

import (
	"context"
	"errors"
	"testing"

	"fraudreport/adapters/model"
	"fraudreport/domain/core"
	"fraudreport/domain/dataset"
	"fraudreport/domain/experiment"
	"fraudreport/internal/testkit"
	"fraudreport/ports"
)

func trainedOn(t *testing.T, ds *dataset.Dataset) ports.Classifier {
	t.Helper()
	fitter, err := model.ForFamily(experiment.FamilyLogistic)
	if err != nil {
		t.Fatalf("fitter lookup failed: %v", err)
	}
	clf, err := fitter.Fit(context.Background(), ds.FeatureMatrix(), ds.LabelVector(), experiment.NewConfig(experiment.FamilyLogistic, nil), 1)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	return clf
}

func TestEvaluate_CellsSumToHoldoutSize(t *testing.T) {
	train := testkit.SeparableDataset(50, 4, 3)
	test := testkit.SeparableDataset(25, 4, 4)

	m, err := Evaluate(trainedOn(t, train), test)
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if m.Total() != test.Len() {
		t.Errorf("confusion cells sum to %d, want %d", m.Total(), test.Len())
	}
}

func TestEvaluate_SeparableDataClassifiesCleanly(t *testing.T) {
	train := testkit.SeparableDataset(50, 4, 7)
	test := testkit.SeparableDataset(25, 4, 8)

	m, err := Evaluate(trainedOn(t, train), test)
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	acc, err := m.Accuracy()
	if err != nil {
		t.Fatalf("accuracy undefined: %v", err)
	}
	if acc < 0.95 {
		t.Errorf("expected near-perfect accuracy on separable classes, got %v", acc)
	}
}

func TestEvaluate_SingleLabelHoldoutLeavesRatesUndefined(t *testing.T) {
	train := testkit.SeparableDataset(50, 3, 1)

	// All-genuine holdout: sensitivity has a zero denominator.
	records := make([]dataset.Record, 30)
	for i := range records {
		records[i] = dataset.Record{Features: []float64{-5, -5, -5}, Label: dataset.LabelGenuine}
	}
	test := &dataset.Dataset{Columns: []string{"V00", "V01", "V02"}, Records: records}

	m, err := Evaluate(trainedOn(t, train), test)
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if _, err := m.Sensitivity(); !errors.Is(err, core.ErrUndefinedRate) {
		t.Errorf("expected undefined sensitivity, got %v", err)
	}
	if _, err := m.Specificity(); err != nil {
		t.Errorf("specificity should be defined, got %v", err)
	}
}

func TestEvaluate_RejectsEmptyHoldout(t *testing.T) {
	train := testkit.SeparableDataset(20, 3, 1)

	if _, err := Evaluate(trainedOn(t, train), &dataset.Dataset{}); !errors.Is(err, core.ErrEmptyDataset) {
		t.Errorf("expected empty dataset error, got %v", err)
	}
	if _, err := Evaluate(trainedOn(t, train), nil); !errors.Is(err, core.ErrEmptyDataset) {
		t.Errorf("nil holdout: expected empty dataset error, got %v", err)
	}
}
