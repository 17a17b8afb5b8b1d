package domain

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is a single served classification.
type Prediction struct {
	ID         uuid.UUID     `json:"id"`
	RequestID  string        `json:"request_id,omitempty"`
	Input      FeatureVector `json:"input"`
	ClassIndex int           `json:"class_index"`
	Label      string        `json:"label"`
	CreatedAt  time.Time     `json:"created_at"`
}

// NewPrediction builds a Prediction for the given class index.
func NewPrediction(input FeatureVector, classIndex int, requestID string) *Prediction {
	return &Prediction{
		ID:         uuid.New(),
		RequestID:  requestID,
		Input:      input,
		ClassIndex: classIndex,
		Label:      ClassLabel(classIndex),
		CreatedAt:  time.Now(),
	}
}

const (
	HealthStatusHealthy       = "healthy"
	HealthStatusModelNotFound = "model not found"
)

// HealthStatus reports artifact presence and whether a model is in memory.
// The two can disagree: the file may appear after a failed startup load.
type HealthStatus struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// TrainingReport summarises one training run.
type TrainingReport struct {
	Samples      int     `json:"samples"`
	TrainSamples int     `json:"train_samples"`
	TestSamples  int     `json:"test_samples"`
	Accuracy     float64 `json:"accuracy"`
	ModelPath    string  `json:"model_path"`
}
