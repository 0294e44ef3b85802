package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report outcomes used as the status label.
const (
	StatusSuccess       = "success"
	StatusInputError    = "input_error"
	StatusInternalError = "internal_error"
)

var (
	ReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insightdeck_reports_total",
		Help: "Report generation requests by outcome",
	}, []string{"status"})

	ReportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "insightdeck_report_duration_seconds",
		Help:    "Time spent generating a report, including serialization",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insightdeck_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"method", "route", "code"})
)

// ObserveReport records one finished generation.
func ObserveReport(status string, took time.Duration) {
	ReportsTotal.WithLabelValues(status).Inc()
	ReportDuration.Observe(took.Seconds())
}
