// Package metrics exposes Prometheus collectors for HTTP traffic, workbook
// analyses and the result cache.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// AnalysesTotal counts analyses by outcome: "success" or an error kind.
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "packing_analyses_total",
			Help: "Total number of packing list analyses",
		},
		[]string{"status"},
	)

	// AnalysisDuration tracks the time to read, aggregate and render one workbook.
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "packing_analysis_duration_seconds",
			Help:    "Packing list analysis duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// AnalysisRows tracks the number of data rows per analyzed workbook.
	AnalysisRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "packing_analysis_rows",
			Help:    "Data rows read per packing list",
			Buckets: prometheus.ExponentialBuckets(10, 4, 7),
		},
	)

	// UploadBytes tracks the size of uploaded workbooks.
	UploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "packing_upload_bytes",
			Help:    "Size of uploaded packing list workbooks in bytes",
			Buckets: prometheus.ExponentialBuckets(4096, 4, 8),
		},
	)

	// BoxesTotal counts analyzed boxes by category.
	BoxesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "packing_boxes_analyzed_total",
			Help: "Total boxes counted across analyses, by category",
		},
		[]string{"category"},
	)

	// CoercionsTotal counts repaired or dropped cells by kind.
	CoercionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "packing_coercions_total",
			Help: "Cells repaired or dropped during normalization",
		},
		[]string{"kind"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordAnalysis records the outcome and duration of one analysis.
func RecordAnalysis(duration time.Duration, status string) {
	AnalysisDuration.Observe(duration.Seconds())
	AnalysesTotal.WithLabelValues(status).Inc()
}

// RecordWorkbook records input size and shape for a successful analysis.
func RecordWorkbook(bytes, rows int, boxesByCategory map[string]int) {
	UploadBytes.Observe(float64(bytes))
	AnalysisRows.Observe(float64(rows))
	for category, boxes := range boxesByCategory {
		if boxes > 0 {
			BoxesTotal.WithLabelValues(category).Add(float64(boxes))
		}
	}
}

// RecordCoercions adds n repairs of the given kind.
func RecordCoercions(kind string, n int) {
	if n > 0 {
		CoercionsTotal.WithLabelValues(kind).Add(float64(n))
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}
