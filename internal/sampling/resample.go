package sampling

import (
	"math"
	"math/rand"

	"fraudreport/domain/core"
	"fraudreport/domain/dataset"
)

// Undersample rebalances a training subset toward the target minority share.
// Every minority-label record is retained; majority-label records are drawn
// uniformly without replacement so that minority:majority approximates
// targetMinorityRatio : (1-targetMinorityRatio). Deterministic per seed.
func Undersample(train *dataset.Dataset, targetMinorityRatio float64, seed int64) (*dataset.Dataset, error) {
	if train == nil || train.Len() == 0 {
		return nil, core.ErrEmptyDataset
	}
	if targetMinorityRatio <= 0 || targetMinorityRatio >= 1 {
		return nil, core.ErrInvalidFraction
	}

	minority := train.MinorityLabel()
	majority := dataset.LabelGenuine
	if minority == dataset.LabelGenuine {
		majority = dataset.LabelFraud
	}

	minorityIdx := train.Indices(minority)
	if len(minorityIdx) == 0 {
		return nil, core.NewClassError(string(minority), core.ErrEmptyClass)
	}
	majorityIdx := train.Indices(majority)

	wanted := int(math.Round(float64(len(minorityIdx)) * (1 - targetMinorityRatio) / targetMinorityRatio))
	if wanted > len(majorityIdx) {
		wanted = len(majorityIdx)
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(majorityIdx), func(i, j int) {
		majorityIdx[i], majorityIdx[j] = majorityIdx[j], majorityIdx[i]
	})

	combined := make([]int, 0, len(minorityIdx)+wanted)
	combined = append(combined, minorityIdx...)
	combined = append(combined, majorityIdx[:wanted]...)
	rng.Shuffle(len(combined), func(i, j int) {
		combined[i], combined[j] = combined[j], combined[i]
	})
	return train.Select(combined), nil
}

// Subsample draws a uniform random sample without replacement of size
// keepFraction*|train|. It is unstratified: the class ratio is approximately
// preserved by uniformity alone, and verified by the caller rather than
// enforced here. Deterministic per seed.
func Subsample(train *dataset.Dataset, keepFraction float64, seed int64) (*dataset.Dataset, error) {
	if train == nil || train.Len() == 0 {
		return nil, core.ErrEmptyDataset
	}
	if keepFraction <= 0 || keepFraction >= 1 {
		return nil, core.ErrInvalidFraction
	}

	n := train.Len()
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	keep := int(math.Round(keepFraction * float64(n)))
	if keep < 1 {
		keep = 1
	}
	return train.Select(indices[:keep]), nil
}
