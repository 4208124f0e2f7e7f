package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // от 1мс до ~4с
		},
		[]string{"method", "path", "status"},
	)

	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_store_op_duration_seconds",
			Help:    "Storage write duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "status"},
	)

	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_persistence_failures_total",
			Help: "Storage writes that failed after retry",
		},
		[]string{"operation"},
	)

	ReconciledProjects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_reconciled_projects_total",
			Help: "Projects rewritten by template reconciliation",
		},
		[]string{"status"}, // status: persisted, failed
	)

	MilestoneToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_milestone_toggles_total",
			Help: "Milestone completion toggles",
		},
		[]string{"source"}, // source: project, template
	)
)

func RecordHTTPRequestDuration(method, path, status string, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

func RecordStoreOp(operation, status string, d time.Duration) {
	StoreOpDuration.WithLabelValues(operation, status).Observe(d.Seconds())
}

func IncPersistenceFailure(operation string) {
	PersistenceFailures.WithLabelValues(operation).Inc()
}

func AddReconciled(status string, n int) {
	ReconciledProjects.WithLabelValues(status).Add(float64(n))
}

func IncToggle(source string) {
	MilestoneToggles.WithLabelValues(source).Inc()
}
