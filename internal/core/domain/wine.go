package domain

import (
	"fmt"
	"math"
)

// FeatureCount is the number of chemistry measurements per wine sample.
const FeatureCount = 13

// FeatureNames lists the Wine features in the order the classifier expects.
var FeatureNames = [FeatureCount]string{
	"alcohol",
	"malic_acid",
	"ash",
	"alcalinity_of_ash",
	"magnesium",
	"total_phenols",
	"flavanoids",
	"nonflavanoid_phenols",
	"proanthocyanins",
	"color_intensity",
	"hue",
	"od280/od315_of_diluted_wines",
	"proline",
}

// LabelUnknown is returned for class indices outside the known cultivars.
const LabelUnknown = "unknown"

var classLabels = map[int]string{
	0: "class_0",
	1: "class_1",
	2: "class_2",
}

// ClassCount is the number of wine cultivars in the dataset.
const ClassCount = 3

// ClassLabel maps a predicted class index to its public label.
func ClassLabel(index int) string {
	if label, ok := classLabels[index]; ok {
		return label
	}
	return LabelUnknown
}

// FeatureVector is one wine sample as sent to /predict.
type FeatureVector []float64

// Validate checks the vector shape and that every value is finite.
func (v FeatureVector) Validate() error {
	if len(v) != FeatureCount {
		return fmt.Errorf("%w, got %d", ErrInvalidFeatureCount, len(v))
	}
	for i, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %s", ErrInvalidFeatureValue, FeatureNames[i])
		}
	}
	return nil
}
