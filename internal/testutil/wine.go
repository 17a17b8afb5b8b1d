package testutil

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"wine-classifier-service/internal/core/domain"
)

// cultivar holds per-class feature means and standard deviations close to the
// published Wine dataset statistics.
type cultivar struct {
	count int
	mean  [domain.FeatureCount]float64
	std   [domain.FeatureCount]float64
}

var cultivars = [domain.ClassCount]cultivar{
	{
		count: 59,
		mean:  [domain.FeatureCount]float64{13.74, 2.01, 2.46, 17.04, 106.3, 2.84, 2.98, 0.29, 1.90, 5.53, 1.06, 3.16, 1116},
		std:   [domain.FeatureCount]float64{0.46, 0.69, 0.23, 2.55, 10.5, 0.34, 0.40, 0.07, 0.41, 1.24, 0.12, 0.36, 221},
	},
	{
		count: 71,
		mean:  [domain.FeatureCount]float64{12.28, 1.93, 2.24, 20.24, 94.5, 2.26, 2.08, 0.36, 1.63, 3.09, 1.06, 2.79, 520},
		std:   [domain.FeatureCount]float64{0.54, 1.02, 0.32, 3.35, 16.8, 0.55, 0.71, 0.12, 0.60, 0.93, 0.20, 0.50, 158},
	},
	{
		count: 48,
		mean:  [domain.FeatureCount]float64{13.15, 3.33, 2.44, 21.42, 99.3, 1.68, 0.78, 0.45, 1.15, 7.40, 0.68, 1.68, 630},
		std:   [domain.FeatureCount]float64{0.53, 1.09, 0.18, 2.26, 10.9, 0.36, 0.29, 0.12, 0.41, 2.31, 0.11, 0.27, 115},
	},
}

// SyntheticWine generates a deterministic Wine-like dataset with the same
// class sizes (59/71/48) as the real one.
func SyntheticWine(seed uint64) *domain.Dataset {
	rng := rand.New(rand.NewPCG(seed, 0xC0FFEE))
	ds := &domain.Dataset{}
	for class, c := range cultivars {
		for i := 0; i < c.count; i++ {
			row := make([]float64, domain.FeatureCount)
			for f := range row {
				v := c.mean[f] + rng.NormFloat64()*c.std[f]
				if v < 0 {
					v = c.mean[f] / 10
				}
				row[f] = v
			}
			ds.Features = append(ds.Features, row)
			ds.Labels = append(ds.Labels, class)
		}
	}
	return ds
}

// WriteUCI writes ds in the UCI wine.data layout (class 1..3 first, no header).
func WriteUCI(w io.Writer, ds *domain.Dataset) error {
	for i, row := range ds.Features {
		fields := make([]string, 0, len(row)+1)
		fields = append(fields, strconv.Itoa(ds.Labels[i]+1))
		for _, v := range row {
			fields = append(fields, strconv.FormatFloat(v, 'f', 4, 64))
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return nil
}

// ClassMean returns the mean feature vector of a synthetic cultivar.
func ClassMean(class int) domain.FeatureVector {
	m := cultivars[class].mean
	return append(domain.FeatureVector(nil), m[:]...)
}
