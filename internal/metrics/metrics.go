package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_broadcast_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "alert_broadcast_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)

	// Alert intake metrics
	AlertsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_broadcast_alerts_total",
			Help: "Total number of alert submissions by outcome",
		},
		[]string{"outcome"}, // outcome: published, rejected, failed
	)

	AlertsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "alert_broadcast_alerts_in_flight",
			Help: "Alerts currently waiting out the publish delay",
		},
	)

	// Sink metrics
	SinkWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_broadcast_sink_writes_total",
			Help: "Total number of alert records written to sinks",
		},
		[]string{"sink", "status"}, // status: success, failed
	)

	// Panic recovery
	PanicsRecovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "alert_broadcast_panics_recovered_total",
			Help: "Total number of panics recovered by the HTTP error middleware",
		},
	)
)

const (
	OutcomePublished = "published"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)
