package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassLabel(t *testing.T) {
	assert.Equal(t, "class_0", ClassLabel(0))
	assert.Equal(t, "class_1", ClassLabel(1))
	assert.Equal(t, "class_2", ClassLabel(2))
	assert.Equal(t, LabelUnknown, ClassLabel(3))
	assert.Equal(t, LabelUnknown, ClassLabel(-1))
}

func TestFeatureVector_Validate(t *testing.T) {
	valid := make(FeatureVector, FeatureCount)
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, FeatureVector{}.Validate(), ErrInvalidFeatureCount)
	assert.ErrorIs(t, make(FeatureVector, FeatureCount+1).Validate(), ErrInvalidFeatureCount)

	withNaN := make(FeatureVector, FeatureCount)
	withNaN[4] = math.NaN()
	err := withNaN.Validate()
	assert.ErrorIs(t, err, ErrInvalidFeatureValue)
	assert.Contains(t, err.Error(), "magnesium")

	withInf := make(FeatureVector, FeatureCount)
	withInf[0] = math.Inf(1)
	assert.ErrorIs(t, withInf.Validate(), ErrInvalidFeatureValue)
}

func TestNewPrediction(t *testing.T) {
	p := NewPrediction(make(FeatureVector, FeatureCount), 1, "req-1")
	assert.Equal(t, "class_1", p.Label)
	assert.Equal(t, 1, p.ClassIndex)
	assert.Equal(t, "req-1", p.RequestID)
	assert.False(t, p.CreatedAt.IsZero())
}
