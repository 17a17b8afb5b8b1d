package dto

import "wine-classifier-service/internal/core/domain"

// PredictRequest carries a single wine sample. Input is a pointer to tell a
// missing key apart from an empty array.
type PredictRequest struct {
	Input *[]float64 `json:"input"`
}

type PredictResponse struct {
	Prediction string `json:"prediction"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToPredictResponse(p *domain.Prediction) PredictResponse {
	return PredictResponse{Prediction: p.Label}
}

func ToHealthResponse(h domain.HealthStatus) HealthResponse {
	return HealthResponse{Status: h.Status, ModelLoaded: h.ModelLoaded}
}
