package handlers

import (
	"errors"
	"net/http"

	"wine-classifier-service/internal/adapters/primary/http/dto"
	"wine-classifier-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

const (
	errKindInvalidInput     = "invalid_input"
	errKindModelUnavailable = "model_unavailable"
	errKindInternal         = "internal"
)

func (h *Handler) mapDomainError(c *gin.Context, err error) {
	switch {
	// Bad request / validation errors
	case errors.Is(err, domain.ErrMissingInput),
		errors.Is(err, domain.ErrInvalidFeatureCount),
		errors.Is(err, domain.ErrInvalidFeatureValue):
		h.observe(errKindInvalidInput)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	// Service unavailable errors
	case errors.Is(err, domain.ErrModelNotLoaded):
		h.observe(errKindModelUnavailable)
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})

	default:
		h.observe(errKindInternal)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

func (h *Handler) observe(kind string) {
	if h.metrics != nil {
		h.metrics.ObserveError(kind)
	}
}
