package handlers

import (
	"net/http"

	"wine-classifier-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

const welcomeMessage = "Welcome to the Wine Classifier - MLIP S26 Docker Lab"

// MetricsSink receives request failure counts and serves the exposition page.
type MetricsSink interface {
	ObserveError(kind string)
	Handler() http.Handler
}

type Handler struct {
	predictionSvc *services.PredictionService
	metrics       MetricsSink
}

// New creates the HTTP handler. metrics may be nil.
func New(predictionSvc *services.PredictionService, metrics MetricsSink) *Handler {
	return &Handler{
		predictionSvc: predictionSvc,
		metrics:       metrics,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Welcome)
	r.GET("/health", h.Health)
	r.POST("/predict", h.Predict)

	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}
}

func (h *Handler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, welcomeMessage)
}
