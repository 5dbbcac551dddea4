// Package metrics exposes Prometheus collectors for the path-follower
// service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	simTicksTotal           prometheus.Counter
	guidanceEvalsTotal      *prometheus.CounterVec
	segmentsCompletedTotal  prometheus.Counter
	pathErrorMeters         prometheus.Histogram
	streamSubscribers       prometheus.Gauge
	httpRequestsTotal       *prometheus.CounterVec
	httpRequestDurationSecs *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		simTicksTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sim_ticks_total",
				Help: "Total number of control-loop ticks executed.",
			},
		)

		guidanceEvalsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guidance_evaluations_total",
				Help: "Total guidance evaluations, labeled by path mode.",
			},
			[]string{"mode"},
		)

		segmentsCompletedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "guidance_segments_completed_total",
				Help: "Total path segments completed.",
			},
		)

		pathErrorMeters = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "guidance_path_error_meters",
				Help:    "Histogram of path deviation magnitudes in meters.",
				Buckets: []float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250},
			},
		)

		streamSubscribers = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "stream_subscribers",
				Help: "Number of currently connected state stream subscribers.",
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSecs = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns the standard Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveTick records one control-loop tick.
func ObserveTick() {
	if simTicksTotal == nil {
		return
	}
	simTicksTotal.Inc()
}

// ObserveGuidance records one guidance evaluation and its deviation.
func ObserveGuidance(mode string, errorMeters float64) {
	if guidanceEvalsTotal == nil {
		return
	}
	guidanceEvalsTotal.WithLabelValues(mode).Inc()
	pathErrorMeters.Observe(errorMeters)
}

// ObserveSegmentComplete records a completed path segment.
func ObserveSegmentComplete() {
	if segmentsCompletedTotal == nil {
		return
	}
	segmentsCompletedTotal.Inc()
}

// SetStreamSubscribers records the current subscriber count.
func SetStreamSubscribers(n int) {
	if streamSubscribers == nil {
		return
	}
	streamSubscribers.Set(float64(n))
}

// ObserveHTTPRequest records metrics for an HTTP request.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSecs.WithLabelValues(method, route).Observe(duration.Seconds())
}
