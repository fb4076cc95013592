package report

import (
	"fmt"
	"strings"
)

// Markdown renders the report as a single markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder

	b.WriteString("# Credit Card Fraud Analysis\n\n")
	if r.Manifest != nil {
		fmt.Fprintf(&b, "Run `%s` - seed %d, %d folds, dataset fingerprint `%s`\n\n",
			r.Manifest.RunID, r.Manifest.Seed, r.Manifest.Folds, shortHash(r.Manifest.Fingerprint.String()))
		fmt.Fprintf(&b, "%d records (%d train / %d test), runtime %dms\n\n",
			r.Manifest.DatasetRows, r.Manifest.TrainRows, r.Manifest.TestRows, r.Manifest.RuntimeMs)
	}

	b.WriteString("## Class distribution\n\n")
	b.WriteString("| Subset | Fraud | Genuine | Fraud share |\n|---|---|---|---|\n")
	for _, c := range r.Distribution {
		fmt.Fprintf(&b, "| %s | %d | %d | %.4f%% |\n", c.Name, c.Fraud, c.Genuine, c.FraudShare*100)
	}
	b.WriteString("\n")

	b.WriteString("## Transaction amounts\n\n")
	fmt.Fprintf(&b, "min %.2f, median %.2f, mean %.2f, p95 %.2f, max %.2f\n\n",
		r.Amount.Min, r.Amount.Median, r.Amount.Mean, r.Amount.P95, r.Amount.Max)
	if len(r.Histogram) > 0 {
		b.WriteString("| Range | Count |\n|---|---|\n")
		for _, bin := range r.Histogram {
			fmt.Fprintf(&b, "| %.2f - %.2f | %d |\n", bin.Low, bin.High, bin.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Cross-validated AUC by model family\n\n")
	for _, sr := range r.Baseline {
		fmt.Fprintf(&b, "### %s training subset\n\n", sr.Subset)
		b.WriteString("| Model | Mean AUC | Fold AUCs |\n|---|---|---|\n")
		for _, res := range sr.Results {
			fmt.Fprintf(&b, "| %s | %.4f | %s |\n", res.Config.Key(), res.MeanAUC, foldList(res.FoldAUCs))
		}
		b.WriteString("\n")
	}

	if len(r.Tuning) > 0 {
		b.WriteString("## Hyperparameter tuning\n\n")
		for _, t := range r.Tuning {
			fmt.Fprintf(&b, "### %s on %s subset (best: %s, AUC %.4f)\n\n",
				t.Family, t.Subset, t.Best.Config.Key(), t.Best.MeanAUC)
			b.WriteString("| Configuration | Mean AUC |\n|---|---|\n")
			for _, row := range t.Rows {
				fmt.Fprintf(&b, "| %s | %.4f |\n", row.Config.Key(), row.MeanAUC)
			}
			b.WriteString("\n")
		}
	}

	if len(r.Holdout) > 0 {
		b.WriteString("## Holdout evaluation\n\n")
		for _, h := range r.Holdout {
			fmt.Fprintf(&b, "### %s (%s)\n\n", h.Family, h.Config)
			b.WriteString("| | Actual fraud | Actual genuine |\n|---|---|---|\n")
			fmt.Fprintf(&b, "| Predicted fraud | %d | %d |\n", h.Matrix.TruePositive, h.Matrix.FalsePositive)
			fmt.Fprintf(&b, "| Predicted genuine | %d | %d |\n\n", h.Matrix.FalseNegative, h.Matrix.TrueNegative)
			b.WriteString("| Metric | Value |\n|---|---|\n")
			fmt.Fprintf(&b, "| Accuracy | %s |\n", formatRate(h.Accuracy))
			fmt.Fprintf(&b, "| Sensitivity | %s |\n", formatRate(h.Sensitivity))
			fmt.Fprintf(&b, "| Specificity | %s |\n", formatRate(h.Specificity))
			fmt.Fprintf(&b, "| Precision | %s |\n\n", formatRate(h.Precision))
		}
	}

	return b.String()
}

func formatRate(r Rate) string {
	if !r.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", r.Value)
}

func foldList(aucs []float64) string {
	parts := make([]string, len(aucs))
	for i, v := range aucs {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return strings.Join(parts, ", ")
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
