package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		recognitionTotal,
		recognitionDurationMs,
	)
}

var (
	recognitionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recognition_total",
			Help: "Media recognition attempts by kind (voice/image) and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	recognitionDurationMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recognition_duration_ms",
			Help:    "End-to-end media recognition duration in milliseconds.",
			Buckets: []float64{100, 250, 500, 1000, 2000, 4000, 8000, 16000},
		},
		[]string{"kind"},
	)
)

func ObserveRecognition(kind, outcome string, durationMs int) {
	recognitionTotal.WithLabelValues(norm(kind), norm(outcome)).Inc()
	recognitionDurationMs.WithLabelValues(norm(kind)).Observe(float64(durationMs))
}
