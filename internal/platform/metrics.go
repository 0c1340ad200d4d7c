package platform

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulse",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed, labeled by method and route.",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pulse",
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of request durations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	LinkTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulse",
		Name:      "link_transitions_total",
		Help:      "Lifecycle notifications emitted by websocket links.",
	}, []string{"link", "status"})

	SpinnerRenders = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pulse",
		Name:      "spinner_renders_total",
		Help:      "Spinner renders across all UI streams.",
	})

	UIStreamsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pulse",
		Name:      "ui_streams_active",
		Help:      "Open /ui server-sent event streams.",
	})
)

// InitMetrics registers core metrics collectors.
func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPDuration, LinkTransitions, SpinnerRenders, UIStreamsActive)
}
