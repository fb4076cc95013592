package app

import (
	"fraudreport/domain/experiment"
)

// BaselineConfig returns each family's fixed baseline configuration used in
// the initial comparison sweep.
func BaselineConfig(family experiment.ModelFamily) experiment.ModelConfig {
	switch family {
	case experiment.FamilyDecisionTree:
		return experiment.NewConfig(family, map[string]float64{
			experiment.ParamComplexity: 0.01,
		})
	case experiment.FamilyRandomForest:
		return experiment.NewConfig(family, map[string]float64{
			experiment.ParamTrees: 500,
		})
	case experiment.FamilyGradientBoosting:
		return experiment.NewConfig(family, map[string]float64{
			experiment.ParamIterations: 100,
			experiment.ParamDepth:      2,
			experiment.ParamShrinkage:  0.1,
			experiment.ParamMinObs:     10,
		})
	default:
		return experiment.NewConfig(family, nil)
	}
}

// DefaultGrid returns the tuning grid of a family. Logistic regression has
// no swept hyperparameters, so its grid holds the single default candidate.
func DefaultGrid(family experiment.ModelFamily) experiment.Grid {
	switch family {
	case experiment.FamilyDecisionTree:
		return experiment.Grid{
			Family: family,
			Axes: []experiment.GridAxis{
				{Name: experiment.ParamComplexity, Values: []float64{0.001, 0.005, 0.01, 0.05}},
			},
		}
	case experiment.FamilyRandomForest:
		return experiment.Grid{
			Family: family,
			Axes: []experiment.GridAxis{
				{Name: experiment.ParamTrees, Values: []float64{500}},
				{Name: experiment.ParamMtry, Values: []float64{2, 4, 6, 8, 10}},
			},
		}
	case experiment.FamilyGradientBoosting:
		return experiment.Grid{
			Family: family,
			Axes: []experiment.GridAxis{
				{Name: experiment.ParamIterations, Values: []float64{100, 200, 300}},
				{Name: experiment.ParamDepth, Values: []float64{1, 2, 3}},
				{Name: experiment.ParamShrinkage, Values: []float64{0.01, 0.1}},
				{Name: experiment.ParamMinObs, Values: []float64{10}},
			},
		}
	default:
		return experiment.Grid{Family: family}
	}
}
