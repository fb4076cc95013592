package experiment

import (
	"fmt"
	"sort"
	"strings"

	"fraudreport/domain/core"
)

// ModelFamily is a tagged variant selecting one classifier algorithm.
type ModelFamily int

const (
	FamilyLogistic ModelFamily = iota
	FamilyDecisionTree
	FamilyRandomForest
	FamilyGradientBoosting
)

// String returns the family's report name.
func (f ModelFamily) String() string {
	switch f {
	case FamilyLogistic:
		return "logistic"
	case FamilyDecisionTree:
		return "decision_tree"
	case FamilyRandomForest:
		return "random_forest"
	case FamilyGradientBoosting:
		return "gradient_boosting"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// Valid reports whether the tag names a supported family.
func (f ModelFamily) Valid() bool {
	return f >= FamilyLogistic && f <= FamilyGradientBoosting
}

// AllFamilies lists every supported family in baseline evaluation order.
func AllFamilies() []ModelFamily {
	return []ModelFamily{FamilyLogistic, FamilyDecisionTree, FamilyRandomForest, FamilyGradientBoosting}
}

// Hyperparameter names shared between configs, grids and fitters.
const (
	ParamComplexity = "cp"         // decision tree: minimum split-improvement
	ParamTrees      = "trees"      // random forest: ensemble size
	ParamMtry       = "mtry"       // random forest: candidate features per split
	ParamIterations = "iterations" // boosting: rounds
	ParamDepth      = "depth"      // boosting: max interaction depth
	ParamShrinkage  = "shrinkage"  // boosting: learning rate
	ParamMinObs     = "minobs"     // boosting: minimum observations per leaf
)

// ModelConfig names an algorithm family plus its hyperparameter values.
// Immutable value object.
type ModelConfig struct {
	Family ModelFamily
	Params map[string]float64
}

// NewConfig builds a config, copying the params map.
func NewConfig(family ModelFamily, params map[string]float64) ModelConfig {
	cp := make(map[string]float64, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return ModelConfig{Family: family, Params: cp}
}

// Param returns a hyperparameter value or a default when unset.
func (c ModelConfig) Param(name string, def float64) float64 {
	if v, ok := c.Params[name]; ok {
		return v
	}
	return def
}

// Key renders the config deterministically for tables and ledger rows.
func (c ModelConfig) Key() string {
	if len(c.Params) == 0 {
		return c.Family.String()
	}
	names := make([]string, 0, len(c.Params))
	for k := range c.Params {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%g", k, c.Params[k])
	}
	return c.Family.String() + "{" + strings.Join(parts, ",") + "}"
}

// GridAxis is one tunable hyperparameter and its candidate values.
type GridAxis struct {
	Name   string
	Values []float64
}

// Grid is an ordered set of axes; candidates enumerate as the Cartesian
// product in axis order, so enumeration is deterministic.
type Grid struct {
	Family ModelFamily
	Axes   []GridAxis
}

// Size returns the number of candidate configurations.
func (g Grid) Size() int {
	n := 1
	for _, ax := range g.Axes {
		n *= len(ax.Values)
	}
	return n
}

// Enumerate expands the grid into configs in fixed order. A grid with no
// axes yields the family's single default config.
func (g Grid) Enumerate() []ModelConfig {
	if len(g.Axes) == 0 {
		return []ModelConfig{NewConfig(g.Family, nil)}
	}
	for _, ax := range g.Axes {
		if len(ax.Values) == 0 {
			return nil
		}
	}
	var out []ModelConfig
	current := make(map[string]float64, len(g.Axes))
	var walk func(axis int)
	walk = func(axis int) {
		if axis == len(g.Axes) {
			out = append(out, NewConfig(g.Family, current))
			return
		}
		for _, v := range g.Axes[axis].Values {
			current[g.Axes[axis].Name] = v
			walk(axis + 1)
		}
		delete(current, g.Axes[axis].Name)
	}
	walk(0)
	return out
}

// Validate fails fast on empty or malformed grids.
func (g Grid) Validate() error {
	if !g.Family.Valid() {
		return core.ErrUnknownFamily
	}
	for _, ax := range g.Axes {
		if len(ax.Values) == 0 {
			return fmt.Errorf("axis %q: %w", ax.Name, core.ErrEmptyGrid)
		}
	}
	if g.Size() == 0 {
		return core.ErrEmptyGrid
	}
	return nil
}

// CVResult is the cross-validated score of one (subset, config) pair.
type CVResult struct {
	Config   ModelConfig
	FoldAUCs []float64
	MeanAUC  float64
}

// TuneResult retains every evaluated candidate plus the winner.
type TuneResult struct {
	Best    CVResult
	Results []CVResult
}
