package domain

import "errors"

// ============================================================================
// Prediction Errors
// ============================================================================

// Validation errors
var (
	ErrMissingInput        = errors.New("request body must contain an \"input\" array")
	ErrInvalidFeatureCount = errors.New("input must contain exactly 13 features")
	ErrInvalidFeatureValue = errors.New("input features must be finite numbers")
)

// Availability errors
var (
	ErrModelNotLoaded = errors.New("model is not loaded")
)

// ============================================================================
// Training Errors
// ============================================================================

var (
	ErrModelNotTrained = errors.New("model not trained")
	ErrEmptyDataset    = errors.New("dataset is empty")
	ErrDatasetMismatch = errors.New("features and labels size mismatch")
)

// ============================================================================
// Artifact Errors
// ============================================================================

var (
	ErrArtifactNotFound = errors.New("model artifact not found")
	ErrInvalidArtifact  = errors.New("model artifact is invalid")
)
