package domain

import (
	"math"
	"math/rand/v2"
)

// Dataset is a labelled feature matrix with 0-based class labels.
type Dataset struct {
	Features [][]float64
	Labels   []int
}

func (d *Dataset) Len() int { return len(d.Labels) }

// Split is a train/test partition of a dataset.
type Split struct {
	Train Dataset
	Test  Dataset
}

// TrainTestSplit shuffles rows with the given seed and holds out
// ceil(n*testRatio) of them for testing. Ratios outside (0, 1) fall back to 0.2.
func TrainTestSplit(ds *Dataset, testRatio float64, seed int64) Split {
	if testRatio <= 0 || testRatio >= 1 {
		testRatio = 0.2
	}

	n := ds.Len()
	nTest := int(math.Ceil(float64(n) * testRatio))
	if nTest >= n {
		nTest = n - 1
	}

	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	perm := rng.Perm(n)

	var split Split
	for i, idx := range perm {
		target := &split.Train
		if i < nTest {
			target = &split.Test
		}
		target.Features = append(target.Features, ds.Features[idx])
		target.Labels = append(target.Labels, ds.Labels[idx])
	}
	return split
}
