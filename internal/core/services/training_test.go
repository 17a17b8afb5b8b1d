package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wine-classifier-service/internal/core/domain"
	output "wine-classifier-service/internal/core/ports/output"
	"wine-classifier-service/internal/ml/forest"
	"wine-classifier-service/internal/testutil"
)

func newForest() output.TrainableModel { return forest.New() }

func TestTrainingService_Train(t *testing.T) {
	loader := new(testutil.MockDatasetLoader)
	store := new(testutil.MockModelStore)
	svc := NewTrainingService(loader, store, newForest)

	loader.On("Load", mock.Anything, "wine.data").Return(testutil.SyntheticWine(1), nil)
	store.On("Save", mock.Anything, mock.AnythingOfType("*forest.RandomForest")).Return(nil)
	store.On("Path").Return("/app/models/wine_model.json.gz")

	report, err := svc.Train(context.Background(), TrainingRequest{DatasetPath: "wine.data", TestRatio: 0.2, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, 178, report.Samples)
	assert.Equal(t, 142, report.TrainSamples)
	assert.Equal(t, 36, report.TestSamples)
	assert.GreaterOrEqual(t, report.Accuracy, 0.90)
	assert.Equal(t, "/app/models/wine_model.json.gz", report.ModelPath)
	store.AssertExpectations(t)
}

func TestTrainingService_LoadFailure(t *testing.T) {
	loader := new(testutil.MockDatasetLoader)
	store := new(testutil.MockModelStore)
	svc := NewTrainingService(loader, store, newForest)

	loader.On("Load", mock.Anything, "missing").Return(nil, errors.New("no such file"))

	_, err := svc.Train(context.Background(), TrainingRequest{DatasetPath: "missing"})
	assert.Error(t, err)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTrainingService_TooFewSamples(t *testing.T) {
	loader := new(testutil.MockDatasetLoader)
	store := new(testutil.MockModelStore)
	svc := NewTrainingService(loader, store, newForest)

	loader.On("Load", mock.Anything, "tiny").Return(&domain.Dataset{
		Features: [][]float64{{1}},
		Labels:   []int{0},
	}, nil)

	_, err := svc.Train(context.Background(), TrainingRequest{DatasetPath: "tiny"})
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

func TestTrainingService_SaveFailure(t *testing.T) {
	loader := new(testutil.MockDatasetLoader)
	store := new(testutil.MockModelStore)
	svc := NewTrainingService(loader, store, newForest)

	loader.On("Load", mock.Anything, "wine.data").Return(testutil.SyntheticWine(1), nil)
	store.On("Save", mock.Anything, mock.Anything).Return(errors.New("read-only file system"))

	_, err := svc.Train(context.Background(), TrainingRequest{DatasetPath: "wine.data"})
	assert.ErrorContains(t, err, "save model")
}
