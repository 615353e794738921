package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GraphQL and upload outcomes used as label values.
const (
	OutcomeSuccess  = "success"
	OutcomeSentinel = "sentinel"
	OutcomeError    = "error"

	OutcomeUploaded = "uploaded"
)

// APIMetrics contains Prometheus metrics for the GraphQL and upload endpoints.
// A nil *APIMetrics is valid and records nothing.
type APIMetrics struct {
	GraphQLOperations *prometheus.CounterVec
	GraphQLDuration   *prometheus.HistogramVec
	Uploads           *prometheus.CounterVec
	UploadBytes       prometheus.Histogram
}

// NewAPIMetrics creates and registers API metrics with the given registerer.
func NewAPIMetrics(registerer prometheus.Registerer) *APIMetrics {
	metrics := &APIMetrics{
		GraphQLOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catmap_graphql_operations_total",
				Help: "Total number of executed GraphQL operations",
			},
			[]string{"operation", "outcome"}, // outcome: success/sentinel/error
		),
		GraphQLDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catmap_graphql_duration_seconds",
				Help:    "Time to execute a GraphQL operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		Uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catmap_uploads_total",
				Help: "Total number of upload attempts",
			},
			[]string{"outcome"}, // uploaded or a rejection reason
		),
		UploadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catmap_upload_size_bytes",
			Help:    "Size of stored uploads",
			Buckets: prometheus.ExponentialBuckets(16<<10, 4, 7), // 16KB .. 64MB
		}),
	}

	registerer.MustRegister(
		metrics.GraphQLOperations,
		metrics.GraphQLDuration,
		metrics.Uploads,
		metrics.UploadBytes,
	)

	return metrics
}

// ObserveGraphQL records one executed operation.
func (m *APIMetrics) ObserveGraphQL(operation, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	if operation == "" {
		operation = "anonymous"
	}
	m.GraphQLOperations.WithLabelValues(operation, outcome).Inc()
	m.GraphQLDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// RecordUpload counts an upload attempt. size is ignored unless the file was stored.
func (m *APIMetrics) RecordUpload(outcome string, size int64) {
	if m == nil {
		return
	}
	m.Uploads.WithLabelValues(outcome).Inc()
	if outcome == OutcomeUploaded {
		m.UploadBytes.Observe(float64(size))
	}
}
