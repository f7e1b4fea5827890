package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Business logic metrics
	scansRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_scans_recorded_total",
			Help: "Total number of product scans recorded",
		},
	)

	symptomsReportedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_symptoms_reported_total",
			Help: "Total number of symptom reports recorded",
		},
	)

	streakComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_streak_computations_total",
			Help: "Streak computations by source (cache or store)",
		},
		[]string{"source"},
	)
)

func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	s := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, endpoint, s).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, s).Observe(duration.Seconds())
}

func RecordScan()             { scansRecordedTotal.Inc() }
func RecordSymptomReport()    { symptomsReportedTotal.Inc() }
func RecordStreak(src string) { streakComputationsTotal.WithLabelValues(src).Inc() }

// Handler exposes the /metrics endpoint.
func Handler() http.Handler { return promhttp.Handler() }
