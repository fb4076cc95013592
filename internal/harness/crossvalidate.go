package harness

import (
	"context"
	"fmt"

	"fraudreport/domain/core"
	"fraudreport/domain/dataset"
	"fraudreport/domain/experiment"
	"fraudreport/internal/sampling"
	"fraudreport/ports"
)

// FitError reports a failed fold with enough context to reproduce it.
type FitError struct {
	Family experiment.ModelFamily
	Fold   int
	Err    error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("%s fold %d: %v", e.Family, e.Fold, e.Err)
}

func (e *FitError) Unwrap() error {
	return e.Err
}

// CrossValidate scores one model configuration on a training subset by
// stratified k-fold cross-validation. Fold assignment derives from the
// master seed and the subset alone, so every configuration evaluated on the
// same subset sees identical folds. A failed fold fails the whole result;
// folds are never silently dropped.
func CrossValidate(ctx context.Context, fitter ports.ClassifierFitter, subset *dataset.Dataset, cfg experiment.ModelConfig, k int, seed core.Seed) (experiment.CVResult, error) {
	if !cfg.Family.Valid() {
		return experiment.CVResult{}, core.ErrUnknownFamily
	}
	if fitter.Family() != cfg.Family {
		return experiment.CVResult{}, fmt.Errorf("fitter is %s, config is %s: %w",
			fitter.Family(), cfg.Family, core.ErrUnknownFamily)
	}

	features := subset.FeatureMatrix()
	labels := subset.LabelVector()

	folds, err := sampling.StratifiedFolds(labels, k, seed.Derive(core.StageFolds))
	if err != nil {
		return experiment.CVResult{}, err
	}

	result := experiment.CVResult{Config: cfg, FoldAUCs: make([]float64, k)}
	sum := 0.0
	for f := 0; f < k; f++ {
		auc, err := scoreFold(ctx, fitter, features, labels, folds, f, cfg, seed)
		if err != nil {
			return experiment.CVResult{}, &FitError{Family: cfg.Family, Fold: f, Err: err}
		}
		result.FoldAUCs[f] = auc
		sum += auc
	}
	result.MeanAUC = sum / float64(k)
	return result, nil
}

func scoreFold(ctx context.Context, fitter ports.ClassifierFitter, features [][]float64, labels []int, folds [][]int, heldOut int, cfg experiment.ModelConfig, seed core.Seed) (float64, error) {
	trainIdx := sampling.TrainFold(folds, heldOut)
	valIdx := folds[heldOut]

	trainX := make([][]float64, len(trainIdx))
	trainY := make([]int, len(trainIdx))
	for i, idx := range trainIdx {
		trainX[i] = features[idx]
		trainY[i] = labels[idx]
	}
	valX := make([][]float64, len(valIdx))
	valY := make([]int, len(valIdx))
	for i, idx := range valIdx {
		valX[i] = features[idx]
		valY[i] = labels[idx]
	}

	fitSeed := seed.DeriveN(core.StageFit+":"+cfg.Key(), heldOut)
	model, err := fitter.Fit(ctx, trainX, trainY, cfg, fitSeed)
	if err != nil {
		return 0, err
	}
	return AUC(model.PredictProba(valX), valY)
}
