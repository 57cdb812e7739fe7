package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	httpRequestsTotal       *prometheus.CounterVec
	httpLatencySeconds      *prometheus.HistogramVec
	httpErrorsTotal         *prometheus.CounterVec
	reportCacheTotal        *prometheus.CounterVec
	templateExpansionsTotal prometheus.Counter
	artifactUploadsTotal    *prometheus.CounterVec
	artifactRejectedTotal   *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		reportCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "report_cache_total",
			Help: "Report cache lookups partitioned by outcome.",
		}, []string{"outcome"})

		templateExpansionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "template_expansions_total",
			Help: "Total number of week template expansions applied.",
		})

		artifactUploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "artifact_uploads_total",
			Help: "Portfolio artifact uploads partitioned by detected type.",
		}, []string{"type"})

		artifactRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "artifact_rejected_total",
			Help: "Portfolio artifact uploads rejected, partitioned by reason.",
		}, []string{"reason"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			reportCacheTotal,
			templateExpansionsTotal,
			artifactUploadsTotal,
			artifactRejectedTotal,
		)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for served requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// ReportCache exposes the counter for report cache outcomes.
func ReportCache() *prometheus.CounterVec {
	RegisterMetrics()
	return reportCacheTotal
}

// TemplateExpansions exposes the counter for template applications.
func TemplateExpansions() prometheus.Counter {
	RegisterMetrics()
	return templateExpansionsTotal
}

// ArtifactUploads exposes the counter for accepted artifact uploads.
func ArtifactUploads() *prometheus.CounterVec {
	RegisterMetrics()
	return artifactUploadsTotal
}

// ArtifactRejected exposes the counter for rejected artifact uploads.
func ArtifactRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return artifactRejectedTotal
}
