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
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapocr_http_requests_total",
		Help: "HTTP requests processed, by method, path and status code.",
	}, []string{"method", "path", "status"})

	ocrRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapocr_ocr_requests_total",
		Help: "OCR invocations, by provider and outcome.",
	}, []string{"provider", "outcome"})

	ocrDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "snapocr_ocr_duration_seconds",
		Help:    "Wall time of OCR provider calls.",
		Buckets: prometheus.DefBuckets,
	})
)

// ObserveRequest records one handled HTTP request.
func ObserveRequest(method, path string, status int) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// ObserveOCR records one OCR provider call.
func ObserveOCR(provider, outcome string, d time.Duration) {
	ocrRequestsTotal.WithLabelValues(provider, outcome).Inc()
	ocrDurationSeconds.Observe(d.Seconds())
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
