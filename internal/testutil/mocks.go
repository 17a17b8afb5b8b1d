package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wine-classifier-service/internal/core/domain"
	output "wine-classifier-service/internal/core/ports/output"
)

// MockModelStore is a mock of ModelStore.
type MockModelStore struct {
	mock.Mock
}

func (m *MockModelStore) Save(ctx context.Context, model output.TrainableModel) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *MockModelStore) Load(ctx context.Context) (output.Classifier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(output.Classifier), args.Error(1)
}

func (m *MockModelStore) Exists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockModelStore) Path() string {
	args := m.Called()
	return args.String(0)
}

// MockClassifier is a mock of Classifier.
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Predict(x []float64) (int, error) {
	args := m.Called(x)
	return args.Int(0), args.Error(1)
}

func (m *MockClassifier) PredictProba(x []float64) ([]float64, error) {
	args := m.Called(x)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

// MockPredictionRecorder is a mock of PredictionRecorder.
type MockPredictionRecorder struct {
	mock.Mock
}

func (m *MockPredictionRecorder) Record(ctx context.Context, p *domain.Prediction) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockDatasetLoader is a mock of DatasetLoader.
type MockDatasetLoader struct {
	mock.Mock
}

func (m *MockDatasetLoader) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dataset), args.Error(1)
}
