package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"wine-classifier-service/internal/adapters/primary/http/dto"
	"wine-classifier-service/internal/adapters/primary/http/middleware"
	"wine-classifier-service/internal/core/domain"
)

func (h *Handler) Predict(c *gin.Context) {
	var req dto.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.observe(errKindInvalidInput)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if req.Input == nil {
		h.observe(errKindInvalidInput)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: domain.ErrMissingInput.Error()})
		return
	}

	prediction, err := h.predictionSvc.Predict(c.Request.Context(), domain.FeatureVector(*req.Input), middleware.GetRequestID(c))
	if err != nil {
		log.WithError(err).Warn("predict failed")
		h.mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictResponse(prediction))
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToHealthResponse(h.predictionSvc.Health(c.Request.Context())))
}
