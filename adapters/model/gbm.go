package model

import (
	"context"
	"math"
	"sort"

	"fraudreport/domain/experiment"
	"fraudreport/ports"
)

// GradientBoostingFitter fits a boosted ensemble of shallow regression trees
// on the logistic deviance gradient. Hyperparameters: iterations (boosting
// rounds), depth (max interaction depth), shrinkage (learning rate) and
// minobs (minimum observations per leaf). The fit is deterministic: no
// subsampling is performed, so the seed is unused.
type GradientBoostingFitter struct{}

const (
	gbmDefaultIterations = 100
	gbmDefaultDepth      = 2
	gbmDefaultShrinkage  = 0.1
	gbmDefaultMinObs     = 10
)

// Family returns the fitter's family tag.
func (f *GradientBoostingFitter) Family() experiment.ModelFamily {
	return experiment.FamilyGradientBoosting
}

// Fit trains the ensemble stagewise.
func (f *GradientBoostingFitter) Fit(ctx context.Context, features [][]float64, labels []int, cfg experiment.ModelConfig, seed int64) (ports.Classifier, error) {
	if err := validateTrainingData(features, labels); err != nil {
		return nil, err
	}

	iterations := int(cfg.Param(experiment.ParamIterations, gbmDefaultIterations))
	depth := int(cfg.Param(experiment.ParamDepth, gbmDefaultDepth))
	shrinkage := cfg.Param(experiment.ParamShrinkage, gbmDefaultShrinkage)
	minObs := int(cfg.Param(experiment.ParamMinObs, gbmDefaultMinObs))

	n := len(features)
	positives := 0
	for _, lab := range labels {
		positives += lab
	}
	// Initial score: log odds of the positive class.
	base := math.Log(float64(positives) / float64(n-positives))

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = base
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	residual := make([]float64, n)
	ensemble := make([]*regNode, 0, iterations)
	for round := 0; round < iterations; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			residual[i] = float64(labels[i]) - sigmoid(scores[i])
		}
		tree := growRegTree(features, labels, residual, scores, idx, 0, depth, minObs)
		for i := 0; i < n; i++ {
			scores[i] += shrinkage * tree.valueFor(features[i])
		}
		ensemble = append(ensemble, tree)
	}

	return &gbmModel{base: base, shrinkage: shrinkage, trees: ensemble}, nil
}

type gbmModel struct {
	base      float64
	shrinkage float64
	trees     []*regNode
}

func (m *gbmModel) PredictProba(features [][]float64) []float64 {
	out := make([]float64, len(features))
	for i, row := range features {
		score := m.base
		for _, tree := range m.trees {
			score += m.shrinkage * tree.valueFor(row)
		}
		out[i] = sigmoid(score)
	}
	return out
}

func (m *gbmModel) Predict(features [][]float64) []int {
	return hardLabels(m.PredictProba(features))
}

// regNode is a node of a least-squares regression tree over the gradient.
type regNode struct {
	leaf      bool
	feature   int
	threshold float64
	left      *regNode
	right     *regNode
	value     float64
}

func (n *regNode) valueFor(row []float64) float64 {
	node := n
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// growRegTree fits residuals by variance-reduction splits. Leaf values use
// the Newton step for logistic deviance: sum(r) / sum(p(1-p)).
func growRegTree(features [][]float64, labels []int, residual, scores []float64, idx []int, depth, maxDepth, minObs int) *regNode {
	node := &regNode{leaf: true, value: newtonLeafValue(labels, scores, residual, idx)}
	if depth >= maxDepth || len(idx) < 2*minObs {
		return node
	}

	feature, threshold, ok := bestRegSplit(features, residual, idx, minObs)
	if !ok {
		return node
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if features[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	node.leaf = false
	node.feature = feature
	node.threshold = threshold
	node.left = growRegTree(features, labels, residual, scores, leftIdx, depth+1, maxDepth, minObs)
	node.right = growRegTree(features, labels, residual, scores, rightIdx, depth+1, maxDepth, minObs)
	return node
}

func newtonLeafValue(labels []int, scores, residual []float64, idx []int) float64 {
	num, den := 0.0, 0.0
	for _, i := range idx {
		p := sigmoid(scores[i])
		num += residual[i]
		den += p * (1 - p)
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// bestRegSplit minimizes the summed squared error of the residuals, scanning
// sorted values with running sums.
func bestRegSplit(features [][]float64, residual []float64, idx []int, minObs int) (feature int, threshold float64, ok bool) {
	total := len(idx)
	p := len(features[idx[0]])

	totalSum := 0.0
	for _, i := range idx {
		totalSum += residual[i]
	}

	type valRes struct {
		v float64
		r float64
	}
	scratch := make([]valRes, total)
	bestGain := 0.0

	for f := 0; f < p; f++ {
		for k, i := range idx {
			scratch[k] = valRes{v: features[i][f], r: residual[i]}
		}
		sort.Slice(scratch, func(a, b int) bool { return scratch[a].v < scratch[b].v })

		leftSum := 0.0
		for k := 0; k < total-1; k++ {
			leftSum += scratch[k].r
			if scratch[k].v == scratch[k+1].v {
				continue
			}
			leftN := k + 1
			rightN := total - leftN
			if leftN < minObs || rightN < minObs {
				continue
			}
			rightSum := totalSum - leftSum
			// Variance reduction up to constants: sum^2/n per side.
			gain := leftSum*leftSum/float64(leftN) + rightSum*rightSum/float64(rightN) -
				totalSum*totalSum/float64(total)
			if gain > bestGain {
				bestGain = gain
				feature = f
				threshold = (scratch[k].v + scratch[k+1].v) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}
