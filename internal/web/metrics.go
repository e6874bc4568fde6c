package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// metrics owns a private registry so several servers can coexist in tests.
type metrics struct {
	registry        *prometheus.Registry
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	generations     *prometheus.CounterVec
	archiveBytes    prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devgenie",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "devgenie",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devgenie",
			Subsystem: "scaffold",
			Name:      "generations_total",
			Help:      "Generated projects by mode, source and fallback",
		}, []string{"mode", "source", "fallback"}),
		archiveBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "devgenie",
			Subsystem: "scaffold",
			Name:      "archive_bytes",
			Help:      "Size distribution of generated archives",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}),
	}
	m.registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.generations,
		m.archiveBytes,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		recorder := &responseRecorder{ResponseWriter: w}
		start := time.Now()
		next(recorder, req)
		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		labels := prometheus.Labels{
			"method": req.Method,
			"route":  route,
			"status": strconv.Itoa(status),
		}
		m.requestTotal.With(labels).Inc()
		m.requestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}

func (m *metrics) recordGeneration(mode, source string, fallback bool, size int) {
	m.generations.With(prometheus.Labels{
		"mode":     mode,
		"source":   source,
		"fallback": strconv.FormatBool(fallback),
	}).Inc()
	m.archiveBytes.Observe(float64(size))
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.status = code
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	if rr.status == 0 {
		rr.status = http.StatusOK
	}
	return rr.ResponseWriter.Write(b)
}
