package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wine-classifier-service/internal/core/domain"
)

const namespace = "wine_classifier"

// Recorder counts predictions by label and request failures by kind on its
// own registry.
type Recorder struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	errors      *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Predictions served, by predicted label.",
		}, []string{"label"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_errors_total",
			Help:      "Failed prediction requests, by error kind.",
		}, []string{"kind"}),
	}
	r.registry.MustRegister(r.predictions, r.errors)
	return r
}

// TrackModel exports a gauge that is 1 while loaded reports true.
func (r *Recorder) TrackModel(loaded func() bool) {
	r.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_loaded",
		Help:      "1 when a model is in memory.",
	}, func() float64 {
		if loaded() {
			return 1
		}
		return 0
	}))
}

func (r *Recorder) Record(_ context.Context, p *domain.Prediction) error {
	r.predictions.WithLabelValues(p.Label).Inc()
	return nil
}

func (r *Recorder) ObserveError(kind string) {
	r.errors.WithLabelValues(kind).Inc()
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
