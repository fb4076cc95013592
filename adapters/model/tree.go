package model

import (
	"context"
	"math/rand"
	"sort"

	"fraudreport/domain/experiment"
	"fraudreport/ports"
)

// DecisionTreeFitter grows a CART-style binary classification tree with
// gini impurity. Its single swept hyperparameter is the complexity control
// cp: the minimum impurity decrease a split must achieve to be accepted.
type DecisionTreeFitter struct{}

const (
	treeDefaultCP   = 0.01
	treeMaxDepth    = 30
	treeMinSplit    = 20
	treeMinLeaf     = 7
)

// Family returns the fitter's family tag.
func (f *DecisionTreeFitter) Family() experiment.ModelFamily {
	return experiment.FamilyDecisionTree
}

// Fit grows the tree on the full attribute set.
func (f *DecisionTreeFitter) Fit(ctx context.Context, features [][]float64, labels []int, cfg experiment.ModelConfig, seed int64) (ports.Classifier, error) {
	if err := validateTrainingData(features, labels); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spec := treeSpec{
		cp:       cfg.Param(experiment.ParamComplexity, treeDefaultCP),
		maxDepth: treeMaxDepth,
		minSplit: treeMinSplit,
		minLeaf:  treeMinLeaf,
		mtry:     0, // all features
	}
	idx := make([]int, len(features))
	for i := range idx {
		idx[i] = i
	}
	root := growTree(features, labels, idx, 0, spec, rand.New(rand.NewSource(seed)))
	return &treeModel{root: root}, nil
}

// treeSpec collects the growth constraints of one tree.
type treeSpec struct {
	cp       float64
	maxDepth int
	minSplit int
	minLeaf  int
	mtry     int // 0 means all features
}

type treeNode struct {
	leaf      bool
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	proba     float64 // P(fraud) at a leaf
}

type treeModel struct {
	root *treeNode
}

func (m *treeModel) PredictProba(features [][]float64) []float64 {
	out := make([]float64, len(features))
	for i, row := range features {
		out[i] = m.root.probaFor(row)
	}
	return out
}

func (m *treeModel) Predict(features [][]float64) []int {
	return hardLabels(m.PredictProba(features))
}

func (n *treeNode) probaFor(row []float64) float64 {
	node := n
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.proba
}

// growTree builds a node over the records in idx. rng is only consulted when
// spec.mtry limits the candidate features (random forest trees).
func growTree(features [][]float64, labels []int, idx []int, depth int, spec treeSpec, rng *rand.Rand) *treeNode {
	positives := 0
	for _, i := range idx {
		positives += labels[i]
	}
	node := &treeNode{leaf: true, proba: float64(positives) / float64(len(idx))}

	if positives == 0 || positives == len(idx) {
		return node
	}
	if depth >= spec.maxDepth || len(idx) < spec.minSplit {
		return node
	}

	feature, threshold, gain := bestSplit(features, labels, idx, spec, rng)
	if feature < 0 || gain < spec.cp {
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
	if len(leftIdx) < spec.minLeaf || len(rightIdx) < spec.minLeaf {
		return node
	}

	node.leaf = false
	node.feature = feature
	node.threshold = threshold
	node.left = growTree(features, labels, leftIdx, depth+1, spec, rng)
	node.right = growTree(features, labels, rightIdx, depth+1, spec, rng)
	return node
}

// bestSplit scans candidate features for the threshold with the largest
// gini impurity decrease, sweeping sorted values with running class counts.
func bestSplit(features [][]float64, labels []int, idx []int, spec treeSpec, rng *rand.Rand) (feature int, threshold, gain float64) {
	p := len(features[idx[0]])
	candidates := make([]int, p)
	for j := range candidates {
		candidates[j] = j
	}
	if spec.mtry > 0 && spec.mtry < p {
		rng.Shuffle(p, func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		candidates = candidates[:spec.mtry]
		sort.Ints(candidates)
	}

	total := len(idx)
	totalPos := 0
	for _, i := range idx {
		totalPos += labels[i]
	}
	parent := giniBinary(totalPos, total)

	feature = -1
	type valLabel struct {
		v   float64
		pos int
	}
	scratch := make([]valLabel, total)

	for _, f := range candidates {
		for k, i := range idx {
			scratch[k] = valLabel{v: features[i][f], pos: labels[i]}
		}
		sort.Slice(scratch, func(a, b int) bool { return scratch[a].v < scratch[b].v })

		leftN, leftPos := 0, 0
		for k := 0; k < total-1; k++ {
			leftN++
			leftPos += scratch[k].pos
			if scratch[k].v == scratch[k+1].v {
				continue
			}
			rightN := total - leftN
			if leftN < spec.minLeaf || rightN < spec.minLeaf {
				continue
			}
			rightPos := totalPos - leftPos
			weighted := (float64(leftN)*giniBinary(leftPos, leftN) +
				float64(rightN)*giniBinary(rightPos, rightN)) / float64(total)
			if g := parent - weighted; g > gain {
				gain = g
				feature = f
				threshold = (scratch[k].v + scratch[k+1].v) / 2
			}
		}
	}
	return feature, threshold, gain
}

func giniBinary(positives, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(positives) / float64(n)
	return 2 * p * (1 - p)
}
