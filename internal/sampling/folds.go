package sampling

import (
	"math/rand"

	"fraudreport/domain/core"
)

// StratifiedFolds assigns record indices to k folds, stratified by label so
// every fold carries approximately the subset's class ratio. The assignment
// is a pure function of (labels, k, seed); evaluating several model families
// on the same subset therefore reuses identical folds.
func StratifiedFolds(labels []int, k int, seed int64) ([][]int, error) {
	if k < 2 {
		return nil, core.ErrInvalidFolds
	}
	if len(labels) < k {
		return nil, core.ErrInsufficientData
	}

	byClass := make(map[int][]int)
	for i, lab := range labels {
		byClass[lab] = append(byClass[lab], i)
	}

	rng := rand.New(rand.NewSource(seed))
	folds := make([][]int, k)
	// Fixed class order (0 then 1) keeps assignment independent of map order.
	for _, class := range []int{0, 1} {
		idx := byClass[class]
		rng.Shuffle(len(idx), func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})
		for i, record := range idx {
			folds[i%k] = append(folds[i%k], record)
		}
	}
	return folds, nil
}

// TrainFold returns every index outside the held-out fold, preserving fold
// order so the result is deterministic.
func TrainFold(folds [][]int, heldOut int) []int {
	var out []int
	for f, fold := range folds {
		if f == heldOut {
			continue
		}
		out = append(out, fold...)
	}
	return out
}
