// Package excel exports the run report as an xlsx workbook: one sheet per
// report section.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fraudreport/internal/report"
)

// WriteWorkbook writes the report tables to an xlsx file.
func WriteWorkbook(r *report.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeDistribution(f, r); err != nil {
		return err
	}
	if err := writeBaseline(f, r); err != nil {
		return err
	}
	if err := writeTuning(f, r); err != nil {
		return err
	}
	if err := writeHoldout(f, r); err != nil {
		return err
	}

	// Drop the default sheet excelize starts with.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeDistribution(f *excelize.File, r *report.Report) error {
	const sheet = "Distribution"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := [][]interface{}{{"Subset", "Fraud", "Genuine", "Fraud share"}}
	for _, c := range r.Distribution {
		rows = append(rows, []interface{}{c.Name, c.Fraud, c.Genuine, c.FraudShare})
	}
	return writeRows(f, sheet, rows)
}

func writeBaseline(f *excelize.File, r *report.Report) error {
	const sheet = "CV AUC"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := [][]interface{}{{"Subset", "Model", "Mean AUC"}}
	for _, sr := range r.Baseline {
		for _, res := range sr.Results {
			rows = append(rows, []interface{}{sr.Subset, res.Config.Key(), res.MeanAUC})
		}
	}
	return writeRows(f, sheet, rows)
}

func writeTuning(f *excelize.File, r *report.Report) error {
	const sheet = "Tuning"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := [][]interface{}{{"Subset", "Family", "Configuration", "Mean AUC", "Best"}}
	for _, t := range r.Tuning {
		for _, row := range t.Rows {
			best := ""
			if row.Config.Key() == t.Best.Config.Key() {
				best = "yes"
			}
			rows = append(rows, []interface{}{t.Subset, t.Family, row.Config.Key(), row.MeanAUC, best})
		}
	}
	return writeRows(f, sheet, rows)
}

func writeHoldout(f *excelize.File, r *report.Report) error {
	const sheet = "Holdout"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := [][]interface{}{{
		"Family", "Configuration", "TP", "FP", "TN", "FN",
		"Accuracy", "Sensitivity", "Specificity", "Precision",
	}}
	for _, h := range r.Holdout {
		rows = append(rows, []interface{}{
			h.Family, h.Config,
			h.Matrix.TruePositive, h.Matrix.FalsePositive, h.Matrix.TrueNegative, h.Matrix.FalseNegative,
			rateCell(h.Accuracy), rateCell(h.Sensitivity), rateCell(h.Specificity), rateCell(h.Precision),
		})
	}
	return writeRows(f, sheet, rows)
}

func rateCell(r report.Rate) interface{} {
	if !r.Defined {
		return "undefined"
	}
	return r.Value
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
