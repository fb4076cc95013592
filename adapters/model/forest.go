package model

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"fraudreport/domain/core"
	"fraudreport/domain/experiment"
	"fraudreport/ports"
)

// RandomForestFitter bags fully grown decision trees over bootstrap samples,
// each split drawing mtry candidate attributes. Hyperparameters: trees
// (ensemble size, 500 in the baseline) and mtry. Trees fit in parallel, but
// every tree's bootstrap and feature sampling derives from (seed, tree
// index), so the forest is identical regardless of scheduling.
type RandomForestFitter struct{}

const forestDefaultTrees = 500

// Family returns the fitter's family tag.
func (f *RandomForestFitter) Family() experiment.ModelFamily {
	return experiment.FamilyRandomForest
}

// Fit trains the ensemble.
func (f *RandomForestFitter) Fit(ctx context.Context, features [][]float64, labels []int, cfg experiment.ModelConfig, seed int64) (ports.Classifier, error) {
	if err := validateTrainingData(features, labels); err != nil {
		return nil, err
	}

	n := len(features)
	p := len(features[0])
	nTrees := int(cfg.Param(experiment.ParamTrees, forestDefaultTrees))
	if nTrees < 1 {
		return nil, fmt.Errorf("trees must be positive, got %d", nTrees)
	}
	mtry := int(cfg.Param(experiment.ParamMtry, math.Floor(math.Sqrt(float64(p)))))
	if mtry < 1 || mtry > p {
		mtry = p
	}

	spec := treeSpec{
		cp:       0, // forest trees grow unpruned
		maxDepth: treeMaxDepth,
		minSplit: 2,
		minLeaf:  1,
		mtry:     mtry,
	}

	trees := make([]*treeNode, nTrees)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for t := 0; t < nTrees; t++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(core.Seed(seed).DeriveN(core.StageFit, t)))
			sample := make([]int, n)
			for j := range sample {
				sample[j] = rng.Intn(n)
			}
			trees[t] = growTree(features, labels, sample, 0, spec, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &forestModel{trees: trees}, nil
}

type forestModel struct {
	trees []*treeNode
}

// PredictProba averages the per-tree leaf probabilities.
func (m *forestModel) PredictProba(features [][]float64) []float64 {
	out := make([]float64, len(features))
	for i, row := range features {
		sum := 0.0
		for _, tree := range m.trees {
			sum += tree.probaFor(row)
		}
		out[i] = sum / float64(len(m.trees))
	}
	return out
}

func (m *forestModel) Predict(features [][]float64) []int {
	return hardLabels(m.PredictProba(features))
}
