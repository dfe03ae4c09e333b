package observability

import (
	"echocity/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the record store.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Registry owns these metrics; the /metrics endpoint serves it.
	Registry *prometheus.Registry

	operations        *prometheus.CounterVec
	complaintsCreated prometheus.Counter
	statusUpdates     *prometheus.CounterVec
}

// NewMetrics creates a private registry so repeated construction in tests never panics on duplicates.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "echocity_store_operations_total",
				Help: "Record store operations by outcome.",
			},
			[]string{"operation", "result"},
		),
		complaintsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "echocity_complaints_created_total",
				Help: "Complaints submitted.",
			},
		),
		statusUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "echocity_status_updates_total",
				Help: "Complaint status changes applied, by new status.",
			},
			[]string{"status"},
		),
	}
}

// RecordOperation counts one store operation. result is e.g. "ok", "miss", "invalid", "error".
func (m *Metrics) RecordOperation(operation, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

// RecordComplaintCreated counts a new complaint
func (m *Metrics) RecordComplaintCreated() {
	if m == nil {
		return
	}
	m.complaintsCreated.Inc()
}

// RecordStatusUpdate counts an applied status change
func (m *Metrics) RecordStatusUpdate(status models.ComplaintStatus) {
	if m == nil {
		return
	}
	m.statusUpdates.WithLabelValues(string(status)).Inc()
}
