package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"wine-classifier-service/internal/core/domain"
	output "wine-classifier-service/internal/core/ports/output"
)

type TrainingRequest struct {
	DatasetPath string
	TestRatio   float64
	Seed        int64
}

type TrainingService struct {
	loader   output.DatasetLoader
	store    output.ModelStore
	newModel func() output.TrainableModel
}

func NewTrainingService(loader output.DatasetLoader, store output.ModelStore, newModel func() output.TrainableModel) *TrainingService {
	return &TrainingService{loader: loader, store: store, newModel: newModel}
}

func (s *TrainingService) Train(ctx context.Context, req TrainingRequest) (*domain.TrainingReport, error) {
	ds, err := s.loader.Load(ctx, req.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	if ds.Len() < 2 {
		return nil, domain.ErrEmptyDataset
	}

	split := domain.TrainTestSplit(ds, req.TestRatio, req.Seed)
	log.WithFields(log.Fields{
		"samples": ds.Len(),
		"train":   split.Train.Len(),
		"test":    split.Test.Len(),
	}).Info("dataset split")

	model := s.newModel()
	if err := model.Fit(ctx, split.Train.Features, split.Train.Labels); err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}

	accuracy, err := evaluate(model, &split.Test)
	if err != nil {
		return nil, fmt.Errorf("evaluate model: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, model); err != nil {
		return nil, fmt.Errorf("save model: %w", err)
	}

	return &domain.TrainingReport{
		Samples:      ds.Len(),
		TrainSamples: split.Train.Len(),
		TestSamples:  split.Test.Len(),
		Accuracy:     accuracy,
		ModelPath:    s.store.Path(),
	}, nil
}

func evaluate(model output.Classifier, test *domain.Dataset) (float64, error) {
	if test.Len() == 0 {
		return 0, nil
	}
	correct := 0
	for i, row := range test.Features {
		label, err := model.Predict(row)
		if err != nil {
			return 0, err
		}
		if label == test.Labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(test.Len()), nil
}
