package forecast

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trainingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_forecast_trainings_total",
			Help: "Total number of forecast model trainings by outcome.",
		},
		[]string{"outcome"},
	)

	trainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mood_forecast_training_duration_seconds",
			Help:    "Duration of successful forecast model trainings.",
			Buckets: prometheus.DefBuckets,
		},
	)

	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_forecast_predictions_total",
			Help: "Total number of forecast requests by strategy and outcome.",
		},
		[]string{"strategy", "outcome"},
	)

	artifactErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_forecast_artifact_errors_total",
			Help: "Model artifact persistence failures by operation.",
		},
		[]string{"op"},
	)
)
