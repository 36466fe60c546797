package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(apiRequestDuration, apiResponsesTotal) }

var (
	apiRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "homework_api_request_duration_seconds",
			Help:    "Latency of homework status API requests.",
			Buckets: prometheus.DefBuckets,
		},
	)

	apiResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homework_api_responses_total",
			Help: "Homework API responses by HTTP status code; 'error' for transport failures.",
		},
		[]string{"code"},
	)
)

// ObserveAPIRequest records one API call. code <= 0 means no response was received.
func ObserveAPIRequest(code int, took time.Duration) {
	apiRequestDuration.Observe(took.Seconds())
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	apiResponsesTotal.WithLabelValues(label).Inc()
}
