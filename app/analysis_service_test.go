package app

import (
	"context"
	"errors"
	"testing"

	"fraudreport/domain/core"
	"fraudreport/domain/experiment"
	"fraudreport/internal/report"
	"fraudreport/internal/testkit"
)

func pipelineRequest(seed int64) AnalysisRequest {
	return AnalysisRequest{
		Dataset:       testkit.ImbalancedDataset(60, 340, 4, 42),
		Seed:          core.Seed(seed),
		TrainFraction: 0.8,
		Folds:         3,
		MinorityRatio: 0.5,
		KeepFraction:  0.5,
	}
}

func TestRun_ProducesCompleteReport(t *testing.T) {
	ledger := testkit.NewInMemoryLedger()
	service := NewAnalysisService(ledger)

	result, err := service.Run(context.Background(), pipelineRequest(123))
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	m := result.Manifest
	if m.TrainRows != 320 || m.TestRows != 80 {
		t.Errorf("partition sizes %d/%d, want 320/80", m.TrainRows, m.TestRows)
	}
	if m.DatasetRows != 400 {
		t.Errorf("dataset rows %d, want 400", m.DatasetRows)
	}
	if len(m.Stages) == 0 {
		t.Error("manifest recorded no stages")
	}

	rep := result.Report
	if len(rep.Distribution) != 5 {
		t.Fatalf("expected 5 distribution rows, got %d", len(rep.Distribution))
	}
	for _, row := range rep.Distribution {
		if row.Name == report.SubsetUndersampled && row.Genuine-row.Fraud > 1 {
			t.Errorf("undersampled subset not balanced: %d fraud vs %d genuine", row.Fraud, row.Genuine)
		}
	}

	if len(rep.Baseline) != 2 {
		t.Fatalf("expected baselines for 2 subsets, got %d", len(rep.Baseline))
	}
	for _, subset := range rep.Baseline {
		if len(subset.Results) != len(experiment.AllFamilies()) {
			t.Errorf("subset %s: %d baseline results, want %d",
				subset.Subset, len(subset.Results), len(experiment.AllFamilies()))
		}
		for _, res := range subset.Results {
			if res.MeanAUC < 0 || res.MeanAUC > 1 {
				t.Errorf("subset %s config %s: AUC %v outside [0,1]",
					subset.Subset, res.Config.Key(), res.MeanAUC)
			}
		}
	}

	if len(rep.Tuning) != 2 {
		t.Fatalf("expected 2 tuned families, got %d", len(rep.Tuning))
	}
	if len(rep.Holdout) != 2 {
		t.Fatalf("expected 2 holdout evaluations, got %d", len(rep.Holdout))
	}
	for _, h := range rep.Holdout {
		if h.Matrix.Total() != m.TestRows {
			t.Errorf("%s: confusion cells sum to %d, want %d", h.Family, h.Matrix.Total(), m.TestRows)
		}
	}
}

func TestRun_PersistsToLedger(t *testing.T) {
	ledger := testkit.NewInMemoryLedger()
	service := NewAnalysisService(ledger)

	result, err := service.Run(context.Background(), pipelineRequest(7))
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	if len(ledger.Runs) != 1 {
		t.Fatalf("expected 1 created run, got %d", len(ledger.Runs))
	}
	if len(ledger.Finished) != 1 || ledger.Finished[0] != result.Manifest.RunID.String() {
		t.Errorf("run %s was not finished in the ledger", result.Manifest.RunID)
	}
	// Both subsets carry baseline rows; the undersampled one also carries
	// the tuning sweeps.
	if got := len(ledger.CVResults[report.SubsetSubsampled]); got != len(experiment.AllFamilies()) {
		t.Errorf("subsampled ledger rows %d, want %d", got, len(experiment.AllFamilies()))
	}
	if got := len(ledger.CVResults[report.SubsetUndersampled]); got <= len(experiment.AllFamilies()) {
		t.Errorf("undersampled ledger rows %d, want baseline plus tuning candidates", got)
	}
	if len(ledger.Confusions) != 2 {
		t.Errorf("expected confusion matrices for 2 families, got %d", len(ledger.Confusions))
	}
}

func TestRun_DeterministicForFixedSeed(t *testing.T) {
	service := NewAnalysisService(nil)

	a, err := service.Run(context.Background(), pipelineRequest(99))
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	b, err := service.Run(context.Background(), pipelineRequest(99))
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	for i, subset := range a.Report.Baseline {
		for j, res := range subset.Results {
			if res.MeanAUC != b.Report.Baseline[i].Results[j].MeanAUC {
				t.Errorf("baseline %s/%s differs across identical runs",
					subset.Subset, res.Config.Key())
			}
		}
	}
	for i, h := range a.Report.Holdout {
		if h.Matrix != b.Report.Holdout[i].Matrix {
			t.Errorf("holdout matrix for %s differs across identical runs", h.Family)
		}
		if h.Config != b.Report.Holdout[i].Config {
			t.Errorf("tuned winner for %s differs across identical runs", h.Family)
		}
	}
}

func TestRun_RejectsEmptyDataset(t *testing.T) {
	service := NewAnalysisService(nil)

	req := pipelineRequest(1)
	req.Dataset = nil
	if _, err := service.Run(context.Background(), req); !errors.Is(err, core.ErrEmptyDataset) {
		t.Errorf("expected empty dataset error, got %v", err)
	}
}

func TestRun_FailsFastOnBadConfiguration(t *testing.T) {
	service := NewAnalysisService(nil)

	req := pipelineRequest(1)
	req.TrainFraction = 1.5
	if _, err := service.Run(context.Background(), req); !core.IsConfigurationError(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestTopFamilies_OrdersByMeanAUC(t *testing.T) {
	results := []experiment.CVResult{
		{Config: experiment.NewConfig(experiment.FamilyLogistic, nil), MeanAUC: 0.80},
		{Config: experiment.NewConfig(experiment.FamilyDecisionTree, nil), MeanAUC: 0.91},
		{Config: experiment.NewConfig(experiment.FamilyRandomForest, nil), MeanAUC: 0.95},
		{Config: experiment.NewConfig(experiment.FamilyGradientBoosting, nil), MeanAUC: 0.91},
	}

	top := topFamilies(results, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 families, got %d", len(top))
	}
	if top[0] != experiment.FamilyRandomForest {
		t.Errorf("best family %v, want random forest", top[0])
	}
	// Ties keep evaluation order: the tree beats boosting at equal AUC.
	if top[1] != experiment.FamilyDecisionTree {
		t.Errorf("second family %v, want decision tree", top[1])
	}
}

func TestBaselineConfig_MatchesGridFamilies(t *testing.T) {
	for _, family := range experiment.AllFamilies() {
		if cfg := BaselineConfig(family); cfg.Family != family {
			t.Errorf("baseline config for %s reports family %s", family, cfg.Family)
		}
		grid := DefaultGrid(family)
		if grid.Family != family {
			t.Errorf("grid for %s reports family %s", family, grid.Family)
		}
		if err := grid.Validate(); err != nil {
			t.Errorf("grid for %s invalid: %v", family, err)
		}
		if grid.Size() < 1 {
			t.Errorf("grid for %s has no candidates", family)
		}
	}
}
