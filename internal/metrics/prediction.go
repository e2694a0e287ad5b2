package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/carprice/internal/domain/feature"
)

// Prediction Prometheus metrics.
var (
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carprice",
			Name:      "predictions_total",
			Help:      "Total number of price predictions",
		},
		[]string{"status"},
	)

	PredictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "carprice",
			Name:      "prediction_duration_seconds",
			Help:      "Feature building plus model evaluation time in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	FeatureMatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carprice",
			Name:      "feature_match_total",
			Help:      "How categorical selections mapped onto model columns",
		},
		[]string{"field", "outcome"}, // outcome: exact / fallback / none
	)
)

var predMetricsRegistered bool

// RegisterPredictionMetrics registers Prometheus prediction metrics. Must be called once from main.
func RegisterPredictionMetrics() {
	if predMetricsRegistered {
		return
	}
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(PredictionDuration)
	prometheus.MustRegister(FeatureMatchTotal)
	predMetricsRegistered = true
}

// PredictionObserver feeds prediction outcomes into the Prometheus metrics.
type PredictionObserver struct{}

// ObservePrediction records one prediction attempt.
func (PredictionObserver) ObservePrediction(status string, d time.Duration) {
	PredictionsTotal.WithLabelValues(status).Inc()
	PredictionDuration.Observe(d.Seconds())
}

// ObserveMatch records how one categorical field was mapped.
func (PredictionObserver) ObserveMatch(field feature.Field, outcome feature.Outcome) {
	FeatureMatchTotal.WithLabelValues(string(field), string(outcome)).Inc()
}
