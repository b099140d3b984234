// Package monitoring provides Prometheus metrics for the import and
// translation pipelines.
package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger *zap.Logger

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Import pipeline metrics
	importsTotal     *prometheus.CounterVec
	importDuration   *prometheus.HistogramVec
	importConfidence *prometheus.HistogramVec

	// Translation pipeline metrics
	translationJobsTotal      *prometheus.CounterVec
	translationJobDuration    *prometheus.HistogramVec
	translationFieldsTotal    prometheus.Counter
	translationBatchFallbacks prometheus.Counter
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	return &MetricsCollector{
		logger: logger,

		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),

		importsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_imports_total",
				Help: "Total number of recipe import attempts",
			},
			[]string{"method", "status"},
		),
		importDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recipe_import_duration_seconds",
				Help:    "Recipe import duration in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"method"},
		),
		importConfidence: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recipe_import_confidence",
				Help:    "Parser confidence of successful imports",
				Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
			},
			[]string{"method"},
		),

		translationJobsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "translation_jobs_total",
				Help: "Total number of translation jobs by outcome",
			},
			[]string{"content_type", "status"},
		),
		translationJobDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "translation_job_duration_seconds",
				Help:    "Translation job processing duration in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"content_type"},
		),
		translationFieldsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "translation_fields_total",
				Help: "Total number of fields translated",
			},
		),
		translationBatchFallbacks: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "translation_batch_fallbacks_total",
				Help: "Number of jobs that fell back to per-field translation",
			},
		),
	}
}

// HTTPMiddleware creates a Gin middleware for HTTP metrics collection
func (m *MetricsCollector) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())

		m.httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusCode,
		).Inc()

		m.httpRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusCode,
		).Observe(duration)
	}
}

// Handler returns the Prometheus scrape handler wrapped for Gin
func (m *MetricsCollector) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// RecordImport records one import attempt
func (m *MetricsCollector) RecordImport(method string, success bool, confidence float64, elapsed time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.importsTotal.WithLabelValues(method, status).Inc()
	m.importDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	if success {
		m.importConfidence.WithLabelValues(method).Observe(confidence)
	}
}

// RecordTranslationJob records one processed translation job
func (m *MetricsCollector) RecordTranslationJob(contentType, status string, fields int, elapsed time.Duration) {
	m.translationJobsTotal.WithLabelValues(contentType, status).Inc()
	m.translationJobDuration.WithLabelValues(contentType).Observe(elapsed.Seconds())
	m.translationFieldsTotal.Add(float64(fields))
}

// RecordBatchFallback records one degradation to per-field translation
func (m *MetricsCollector) RecordBatchFallback() {
	m.translationBatchFallbacks.Inc()
}
