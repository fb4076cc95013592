package excel

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"fraudreport/domain/core"
	"fraudreport/domain/experiment"
	"fraudreport/domain/run"
	"fraudreport/internal/report"
)

func TestWriteWorkbook(t *testing.T) {
	cv := experiment.CVResult{
		Config:   experiment.NewConfig(experiment.FamilyDecisionTree, map[string]float64{experiment.ParamComplexity: 0.01}),
		FoldAUCs: []float64{0.9, 0.92},
		MeanAUC:  0.91,
	}
	r := &report.Report{
		Manifest: run.NewManifest(core.Seed(1), "fp", 100, 5),
		Distribution: []report.ClassCount{
			{Name: "full", Fraud: 10, Genuine: 90, FraudShare: 0.1},
			{Name: "train", Fraud: 8, Genuine: 72, FraudShare: 0.1},
		},
		Baseline: []report.SubsetResults{{Subset: report.SubsetUndersampled, Results: []experiment.CVResult{cv}}},
		Tuning:   []report.TuningTable{{Subset: report.SubsetUndersampled, Family: "decision_tree", Best: cv, Rows: []experiment.CVResult{cv}}},
		Holdout: []report.HoldoutResult{report.NewHoldoutResult("decision_tree", cv.Config.Key(),
			experiment.ConfusionMatrix{TruePositive: 5, FalseNegative: 1, TrueNegative: 18, FalsePositive: 1})},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteWorkbook(r, path); err != nil {
		t.Fatalf("workbook write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("workbook does not reopen: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Distribution", "CV AUC", "Tuning", "Holdout"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Errorf("missing sheet %q", sheet)
		}
	}
	if idx, _ := f.GetSheetIndex("Sheet1"); idx >= 0 {
		t.Error("default sheet was not dropped")
	}

	rows, err := f.GetRows("Distribution")
	if err != nil {
		t.Fatalf("failed to read distribution sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("distribution sheet has %d rows, want header plus 2", len(rows))
	}
	if rows[1][0] != "full" || rows[1][1] != "10" {
		t.Errorf("unexpected first data row %v", rows[1])
	}

	holdout, err := f.GetRows("Holdout")
	if err != nil {
		t.Fatalf("failed to read holdout sheet: %v", err)
	}
	if len(holdout) != 2 {
		t.Fatalf("holdout sheet has %d rows, want 2", len(holdout))
	}
}

func TestWriteWorkbook_UndefinedRatesAsText(t *testing.T) {
	r := &report.Report{
		Holdout: []report.HoldoutResult{report.NewHoldoutResult("logistic", "logistic",
			experiment.ConfusionMatrix{TrueNegative: 20})},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteWorkbook(r, path); err != nil {
		t.Fatalf("workbook write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("workbook does not reopen: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Holdout")
	if err != nil {
		t.Fatalf("failed to read holdout sheet: %v", err)
	}
	// Sensitivity column of the single data row.
	if got := rows[1][7]; got != "undefined" {
		t.Errorf("sensitivity cell %q, want undefined", got)
	}
}
