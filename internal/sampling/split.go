package sampling

import (
	"math"
	"math/rand"

	"fraudreport/domain/core"
	"fraudreport/domain/dataset"
)

// Split partitions a dataset into disjoint train and holdout subsets by
// uniform index sampling without replacement. The partition is a pure
// function of (dataset, trainFraction, seed): the same seed always yields
// the identical partition. Class ratio is not enforced; it is reported
// post hoc.
func Split(ds *dataset.Dataset, trainFraction float64, seed int64) (train, test *dataset.Dataset, err error) {
	if ds == nil || ds.Len() == 0 {
		return nil, nil, core.ErrEmptyDataset
	}
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, nil, core.ErrInvalidFraction
	}

	n := ds.Len()
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	trainSize := int(math.Round(trainFraction * float64(n)))
	return ds.Select(indices[:trainSize]), ds.Select(indices[trainSize:]), nil
}
