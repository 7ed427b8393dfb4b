package api

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	verificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "liveproof",
		Subsystem: "verify",
		Name:      "verifications_total",
		Help:      "Total verifications by scoring path and confidence level.",
	}, []string{"model_used", "level"})

	verifyConfidence = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "liveproof",
		Subsystem: "verify",
		Name:      "confidence",
		Help:      "Distribution of verification confidence scores.",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
	})

	challengesRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "liveproof",
		Subsystem: "verify",
		Name:      "challenges_recorded_total",
		Help:      "Total challenge outcomes recorded by challenge type.",
	}, []string{"type"})

	featureMismatches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "liveproof",
		Subsystem: "verify",
		Name:      "feature_mismatches_total",
		Help:      "Structural model/extractor mismatches surfaced as hard errors.",
	})
)

var registerMetricsOnce sync.Once

func registerMetrics() {
	registerMetricsOnce.Do(func() {
		prometheus.MustRegister(
			verificationsTotal,
			verifyConfidence,
			challengesRecorded,
			featureMismatches,
		)
	})
}
