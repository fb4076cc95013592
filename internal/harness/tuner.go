package harness

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"fraudreport/domain/core"
	"fraudreport/domain/dataset"
	"fraudreport/domain/experiment"
	"fraudreport/ports"
)

// Tune cross-validates every candidate configuration of a grid and selects
// the one with the highest mean AUC. Candidates are independent pure
// computations and evaluate in parallel; results collect by enumeration
// index, and ties break toward the earlier candidate, so the outcome is
// identical to a sequential sweep. Every evaluated (config, score) pair is
// retained for reporting.
func Tune(ctx context.Context, fitter ports.ClassifierFitter, subset *dataset.Dataset, grid experiment.Grid, k int, seed core.Seed) (experiment.TuneResult, error) {
	if err := grid.Validate(); err != nil {
		return experiment.TuneResult{}, err
	}
	candidates := grid.Enumerate()
	if len(candidates) == 0 {
		return experiment.TuneResult{}, core.ErrEmptyGrid
	}

	results := make([]experiment.CVResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, cfg := range candidates {
		g.Go(func() error {
			res, err := CrossValidate(gctx, fitter, subset, cfg, k, seed)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return experiment.TuneResult{}, err
	}

	best := results[0]
	for _, res := range results[1:] {
		if res.MeanAUC > best.MeanAUC {
			best = res
		}
	}
	return experiment.TuneResult{Best: best, Results: results}, nil
}
