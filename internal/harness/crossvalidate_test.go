package harness

import (
	"context"
	"errors"
	"testing"

	"fraudreport/adapters/model"
	"fraudreport/domain/core"
	"fraudreport/domain/experiment"
	"fraudreport/internal/testkit"
)

func TestCrossValidate_SeparableDataScoresHigh(t *testing.T) {
	ds := testkit.SeparableDataset(60, 4, 11)
	fitter, err := model.ForFamily(experiment.FamilyLogistic)
	if err != nil {
		t.Fatalf("fitter lookup failed: %v", err)
	}

	res, err := CrossValidate(context.Background(), fitter, ds, experiment.NewConfig(experiment.FamilyLogistic, nil), 5, core.Seed(1))
	if err != nil {
		t.Fatalf("cross-validation failed: %v", err)
	}

	if len(res.FoldAUCs) != 5 {
		t.Fatalf("expected 5 fold scores, got %d", len(res.FoldAUCs))
	}
	for f, auc := range res.FoldAUCs {
		if auc < 0 || auc > 1 {
			t.Errorf("fold %d: AUC %v outside [0,1]", f, auc)
		}
	}
	if res.MeanAUC < 0.95 {
		t.Errorf("expected near-perfect AUC on separable classes, got %v", res.MeanAUC)
	}
}

func TestCrossValidate_Deterministic(t *testing.T) {
	ds := testkit.ImbalancedDataset(40, 160, 4, 5)
	fitter, err := model.ForFamily(experiment.FamilyDecisionTree)
	if err != nil {
		t.Fatalf("fitter lookup failed: %v", err)
	}
	cfg := experiment.NewConfig(experiment.FamilyDecisionTree, map[string]float64{experiment.ParamComplexity: 0.01})

	a, err := CrossValidate(context.Background(), fitter, ds, cfg, 4, core.Seed(7))
	if err != nil {
		t.Fatalf("cross-validation failed: %v", err)
	}
	b, err := CrossValidate(context.Background(), fitter, ds, cfg, 4, core.Seed(7))
	if err != nil {
		t.Fatalf("cross-validation failed: %v", err)
	}

	for f := range a.FoldAUCs {
		if a.FoldAUCs[f] != b.FoldAUCs[f] {
			t.Errorf("fold %d: scores differ across identical runs: %v vs %v", f, a.FoldAUCs[f], b.FoldAUCs[f])
		}
	}
	if a.MeanAUC != b.MeanAUC {
		t.Errorf("mean AUC differs across identical runs: %v vs %v", a.MeanAUC, b.MeanAUC)
	}
}

func TestCrossValidate_RejectsMismatchedFitter(t *testing.T) {
	ds := testkit.ImbalancedDataset(20, 80, 3, 1)
	fitter, err := model.ForFamily(experiment.FamilyLogistic)
	if err != nil {
		t.Fatalf("fitter lookup failed: %v", err)
	}

	cfg := experiment.NewConfig(experiment.FamilyRandomForest, nil)
	if _, err := CrossValidate(context.Background(), fitter, ds, cfg, 3, core.Seed(1)); !errors.Is(err, core.ErrUnknownFamily) {
		t.Errorf("expected family mismatch error, got %v", err)
	}
}

func TestCrossValidate_TagsFailedFold(t *testing.T) {
	// One lone fraud record cannot land in every fold; some training split
	// is single-class and the fit must fail with fold context attached.
	ds := testkit.ImbalancedDataset(1, 99, 3, 2)
	fitter, err := model.ForFamily(experiment.FamilyLogistic)
	if err != nil {
		t.Fatalf("fitter lookup failed: %v", err)
	}

	_, err = CrossValidate(context.Background(), fitter, ds, experiment.NewConfig(experiment.FamilyLogistic, nil), 5, core.Seed(3))
	if err == nil {
		t.Fatal("expected a failed fold, got success")
	}
	var fitErr *FitError
	if !errors.As(err, &fitErr) {
		t.Fatalf("expected fold-tagged error, got %v", err)
	}
	if fitErr.Family != experiment.FamilyLogistic {
		t.Errorf("tagged family %v, want logistic", fitErr.Family)
	}
	if !errors.Is(err, core.ErrDegenerateFold) {
		t.Errorf("expected degenerate fold cause, got %v", fitErr.Err)
	}
}
