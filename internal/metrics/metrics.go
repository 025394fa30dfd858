package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Pipeline metrics
	UploadsTotal     prometheus.Counter
	RunsTotal        *prometheus.CounterVec
	RunDuration      prometheus.Histogram
	RecordsProcessed prometheus.Histogram

	// Export metrics
	PDFExportsTotal *prometheus.CounterVec
}

// NewCollector creates a new metrics collector
func NewCollector(namespace string) *Collector {
	return &Collector{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by endpoint, method, and status",
			},
			[]string{"endpoint", "method", "status"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"endpoint"},
		),

		UploadsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Total number of spreadsheet files uploaded",
			},
		),

		RunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_runs_total",
				Help:      "Total number of pipeline runs by outcome",
			},
			[]string{"outcome"},
		),

		RunDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pipeline_run_duration_seconds",
				Help:      "Duration of a full pipeline run in seconds",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 15.0},
			},
		),

		RecordsProcessed: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pipeline_records_per_run",
				Help:      "Number of long-format records produced per run",
				Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
			},
		),

		PDFExportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pdf_exports_total",
				Help:      "Total number of PDF export attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordHTTPRequest increments the HTTP request counter
func (c *Collector) RecordHTTPRequest(endpoint, method, status string) {
	c.HTTPRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}

// RecordRun records one pipeline run with its outcome and duration
func (c *Collector) RecordRun(outcome string, records int, duration time.Duration) {
	c.RunsTotal.WithLabelValues(outcome).Inc()
	c.RunDuration.Observe(duration.Seconds())
	if records > 0 {
		c.RecordsProcessed.Observe(float64(records))
	}
}

// RecordPDFExport records one PDF export attempt
func (c *Collector) RecordPDFExport(outcome string) {
	c.PDFExportsTotal.WithLabelValues(outcome).Inc()
}
