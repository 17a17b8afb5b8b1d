package ports

import (
	"context"
	"io"

	"wine-classifier-service/internal/core/domain"
)

// Classifier is a fitted model that can score one feature row.
type Classifier interface {
	Predict(x []float64) (int, error)
	PredictProba(x []float64) ([]float64, error)
}

// TrainableModel is a classifier that can be fitted and serialized.
type TrainableModel interface {
	Classifier
	Fit(ctx context.Context, x [][]float64, y []int) error
	Save(w io.Writer) error
}

// ModelStore persists the single model artifact.
type ModelStore interface {
	Save(ctx context.Context, model TrainableModel) error
	Load(ctx context.Context) (Classifier, error)
	Exists(ctx context.Context) (bool, error)
	Path() string
}

// DatasetLoader reads a labelled dataset from a path.
type DatasetLoader interface {
	Load(ctx context.Context, path string) (*domain.Dataset, error)
}

// PredictionRecorder appends served predictions to a durable sink.
type PredictionRecorder interface {
	Record(ctx context.Context, p *domain.Prediction) error
}
