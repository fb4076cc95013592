package app

import (
	"context"
	"sort"

	"fraudreport/adapters/model"
	"fraudreport/domain/core"
	"fraudreport/domain/dataset"
	"fraudreport/domain/experiment"
	"fraudreport/domain/run"
	"fraudreport/internal"
	"fraudreport/internal/harness"
	"fraudreport/internal/holdout"
	"fraudreport/internal/report"
	"fraudreport/internal/sampling"
	"fraudreport/ports"
)

// AmountColumn is the attribute summarized in the report's distribution
// section when present in the schema.
const AmountColumn = "Amount"

// tunedFamilies is how many of the best-scoring families get a grid sweep.
const tunedFamilies = 2

// AnalysisService runs the complete pipeline: split, resample,
// cross-validate the four families, tune the two best, evaluate the tuned
// winners on the holdout, and assemble the report.
type AnalysisService struct {
	ledger ports.ResultLedger // optional; nil disables persistence
	log    *internal.Logger
}

// AnalysisRequest carries the pipeline parameters for one run.
type AnalysisRequest struct {
	Dataset       *dataset.Dataset
	Seed          core.Seed
	TrainFraction float64
	Folds         int
	MinorityRatio float64
	KeepFraction  float64
}

// AnalysisResult is the complete output of one run.
type AnalysisResult struct {
	Manifest *run.Manifest
	Report   *report.Report
}

// NewAnalysisService creates the pipeline service. ledger may be nil.
func NewAnalysisService(ledger ports.ResultLedger) *AnalysisService {
	return &AnalysisService{ledger: ledger, log: internal.DefaultLogger}
}

// Run executes the pipeline. Stages run strictly in sequence; each consumes
// the complete output of the previous one. A failed fit aborts the run.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	ds := req.Dataset
	if ds == nil || ds.Len() == 0 {
		return nil, core.ErrEmptyDataset
	}

	manifest := run.NewManifest(req.Seed, ds.Fingerprint(), ds.Len(), req.Folds)
	rep := &report.Report{Manifest: manifest}

	train, test, err := sampling.Split(ds, req.TrainFraction, req.Seed.Derive(core.StageSplit))
	if err != nil {
		return nil, err
	}
	manifest.TrainRows = train.Len()
	manifest.TestRows = test.Len()
	manifest.RecordStage(core.StageSplit)
	s.log.Info("split: %d train / %d test", train.Len(), test.Len())

	undersampled, err := sampling.Undersample(train, req.MinorityRatio, req.Seed.Derive(core.StageUndersample))
	if err != nil {
		return nil, err
	}
	manifest.RecordStage(core.StageUndersample)

	subsampled, err := sampling.Subsample(train, req.KeepFraction, req.Seed.Derive(core.StageSubsample))
	if err != nil {
		return nil, err
	}
	manifest.RecordStage(core.StageSubsample)

	// Class balance of every subset, including the post-hoc verification
	// that the plain subsample kept roughly the original ratio.
	rep.Distribution = []report.ClassCount{
		report.NewClassCount("full", ds),
		report.NewClassCount("train", train),
		report.NewClassCount("test", test),
		report.NewClassCount(report.SubsetUndersampled, undersampled),
		report.NewClassCount(report.SubsetSubsampled, subsampled),
	}
	s.describeAmounts(ds, rep)

	if s.ledger != nil {
		if err := s.ledger.CreateRun(ctx, manifest); err != nil {
			return nil, err
		}
	}

	subsets := []struct {
		name string
		data *dataset.Dataset
	}{
		{report.SubsetUndersampled, undersampled},
		{report.SubsetSubsampled, subsampled},
	}

	var undersampledScores []experiment.CVResult
	for _, subset := range subsets {
		results, err := s.baseline(ctx, subset.data, req.Folds, req.Seed)
		if err != nil {
			return nil, err
		}
		rep.Baseline = append(rep.Baseline, report.SubsetResults{Subset: subset.name, Results: results})
		if subset.name == report.SubsetUndersampled {
			undersampledScores = results
		}
		if err := s.persistCV(ctx, manifest, subset.name, results); err != nil {
			return nil, err
		}
	}
	manifest.RecordStage("baseline_cv")

	// Tune the two best-performing families on the rebalanced subset, then
	// refit each winner on its full training subset and score the holdout.
	for _, family := range topFamilies(undersampledScores, tunedFamilies) {
		tuned, err := s.tune(ctx, undersampled, family, req.Folds, req.Seed)
		if err != nil {
			return nil, err
		}
		rep.Tuning = append(rep.Tuning, report.TuningTable{
			Subset: report.SubsetUndersampled,
			Family: family.String(),
			Best:   tuned.Best,
			Rows:   tuned.Results,
		})
		if err := s.persistCV(ctx, manifest, report.SubsetUndersampled, tuned.Results); err != nil {
			return nil, err
		}

		holdoutResult, err := s.evaluateHoldout(ctx, undersampled, test, tuned.Best.Config, req.Seed)
		if err != nil {
			return nil, err
		}
		rep.Holdout = append(rep.Holdout, holdoutResult)
		if s.ledger != nil {
			if err := s.ledger.SaveConfusion(ctx, manifest.RunID.String(), family.String(), holdoutResult.Matrix); err != nil {
				return nil, err
			}
		}
	}
	manifest.RecordStage("tune")
	manifest.RecordStage("holdout")

	manifest.Finish()
	if s.ledger != nil {
		if err := s.ledger.FinishRun(ctx, manifest); err != nil {
			return nil, err
		}
	}
	return &AnalysisResult{Manifest: manifest, Report: rep}, nil
}

// baseline cross-validates every family's baseline configuration.
func (s *AnalysisService) baseline(ctx context.Context, subset *dataset.Dataset, folds int, seed core.Seed) ([]experiment.CVResult, error) {
	var out []experiment.CVResult
	for _, family := range experiment.AllFamilies() {
		fitter, err := model.ForFamily(family)
		if err != nil {
			return nil, err
		}
		cfg := BaselineConfig(family)
		res, err := harness.CrossValidate(ctx, fitter, subset, cfg, folds, seed)
		if err != nil {
			return nil, err
		}
		s.log.Info("baseline %s: AUC %.4f", cfg.Key(), res.MeanAUC)
		out = append(out, res)
	}
	return out, nil
}

func (s *AnalysisService) tune(ctx context.Context, subset *dataset.Dataset, family experiment.ModelFamily, folds int, seed core.Seed) (experiment.TuneResult, error) {
	fitter, err := model.ForFamily(family)
	if err != nil {
		return experiment.TuneResult{}, err
	}
	grid := DefaultGrid(family)
	tuned, err := harness.Tune(ctx, fitter, subset, grid, folds, seed)
	if err != nil {
		return experiment.TuneResult{}, err
	}
	s.log.Info("tuned %s: best %s AUC %.4f over %d candidates",
		family, tuned.Best.Config.Key(), tuned.Best.MeanAUC, len(tuned.Results))
	return tuned, nil
}

func (s *AnalysisService) evaluateHoldout(ctx context.Context, trainSubset, test *dataset.Dataset, cfg experiment.ModelConfig, seed core.Seed) (report.HoldoutResult, error) {
	fitter, err := model.ForFamily(cfg.Family)
	if err != nil {
		return report.HoldoutResult{}, err
	}
	refit, err := fitter.Fit(ctx, trainSubset.FeatureMatrix(), trainSubset.LabelVector(), cfg,
		seed.Derive(core.StageFit+":refit:"+cfg.Key()))
	if err != nil {
		return report.HoldoutResult{}, err
	}
	matrix, err := holdout.Evaluate(refit, test)
	if err != nil {
		return report.HoldoutResult{}, err
	}
	return report.NewHoldoutResult(cfg.Family.String(), cfg.Key(), matrix), nil
}

func (s *AnalysisService) persistCV(ctx context.Context, manifest *run.Manifest, subset string, results []experiment.CVResult) error {
	if s.ledger == nil {
		return nil
	}
	for _, res := range results {
		if err := s.ledger.SaveCVResult(ctx, manifest.RunID.String(), subset, res); err != nil {
			return err
		}
	}
	return nil
}

// describeAmounts fills the amount section when the schema carries the
// column; synthetic datasets without it simply skip the section.
func (s *AnalysisService) describeAmounts(ds *dataset.Dataset, rep *report.Report) {
	amounts, err := ds.ColumnValues(AmountColumn)
	if err != nil {
		s.log.Warn("no %s column, skipping amount summary", AmountColumn)
		return
	}
	summary, err := report.NewAmountSummary(amounts)
	if err != nil {
		s.log.Warn("amount summary failed: %v", err)
		return
	}
	rep.Amount = summary
	rep.Histogram = report.NewHistogram(amounts, 10)
}

// topFamilies orders baseline results by mean AUC and returns the best n
// families; ties keep baseline evaluation order.
func topFamilies(results []experiment.CVResult, n int) []experiment.ModelFamily {
	ordered := append([]experiment.CVResult(nil), results...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MeanAUC > ordered[j].MeanAUC
	})
	if n > len(ordered) {
		n = len(ordered)
	}
	out := make([]experiment.ModelFamily, n)
	for i := 0; i < n; i++ {
		out[i] = ordered[i].Config.Family
	}
	return out
}
