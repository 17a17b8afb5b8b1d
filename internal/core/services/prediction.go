package services

import (
	"context"
	"fmt"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"wine-classifier-service/internal/core/domain"
	output "wine-classifier-service/internal/core/ports/output"
)

type PredictionService struct {
	store     output.ModelStore
	recorders []output.PredictionRecorder
	model     atomic.Pointer[modelHandle]
}

// modelHandle wraps the interface so it can live in an atomic.Pointer.
type modelHandle struct {
	classifier output.Classifier
}

func NewPredictionService(store output.ModelStore, recorders ...output.PredictionRecorder) *PredictionService {
	return &PredictionService{store: store, recorders: recorders}
}

// LoadModel loads the artifact from the store. On failure the previously
// loaded model, if any, stays in place.
func (s *PredictionService) LoadModel(ctx context.Context) error {
	classifier, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load model from %s: %w", s.store.Path(), err)
	}
	s.model.Store(&modelHandle{classifier: classifier})
	log.WithField("path", s.store.Path()).Info("model loaded")
	return nil
}

// Reload is LoadModel for callers that only want to log the outcome.
func (s *PredictionService) Reload(ctx context.Context) {
	if err := s.LoadModel(ctx); err != nil {
		log.WithError(err).Warn("model reload failed, keeping current model")
	}
}

func (s *PredictionService) ModelLoaded() bool {
	return s.model.Load() != nil
}

func (s *PredictionService) Predict(ctx context.Context, input domain.FeatureVector, requestID string) (*domain.Prediction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	handle := s.model.Load()
	if handle == nil {
		return nil, domain.ErrModelNotLoaded
	}

	classIndex, err := handle.classifier.Predict(input)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	prediction := domain.NewPrediction(input, classIndex, requestID)
	for _, r := range s.recorders {
		if err := r.Record(ctx, prediction); err != nil {
			log.WithError(err).WithField("prediction_id", prediction.ID).Warn("record prediction failed")
		}
	}
	return prediction, nil
}

func (s *PredictionService) Health(ctx context.Context) domain.HealthStatus {
	status := domain.HealthStatusModelNotFound
	exists, err := s.store.Exists(ctx)
	if err != nil {
		log.WithError(err).Warn("check model artifact failed")
	}
	if exists {
		status = domain.HealthStatusHealthy
	}
	return domain.HealthStatus{
		Status:      status,
		ModelLoaded: s.ModelLoaded(),
	}
}
