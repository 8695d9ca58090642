package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusInvalid = "invalid"
)

type TransferPrometheusMetrics struct {
	submissions  *prometheus.CounterVec
	lookups      *prometheus.CounterVec
	balanceDrift *prometheus.CounterVec
}

func newTransferPrometheusMetrics(reg prometheus.Registerer) *TransferPrometheusMetrics {
	submissions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfer_submissions_total",
			Help: "Transfer submissions by transfer type and outcome.",
		},
		[]string{"transfer_type", "status"},
	)
	lookups := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfer_account_lookups_total",
			Help: "Third-party account lookups by outcome.",
		},
		[]string{"status"},
	)
	balanceDrift := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfer_projected_balance_updates_total",
			Help: "Local balance projections applied without server reconciliation.",
		},
		[]string{"leg"},
	)

	reg.MustRegister(submissions, lookups, balanceDrift)

	return &TransferPrometheusMetrics{
		submissions:  submissions,
		lookups:      lookups,
		balanceDrift: balanceDrift,
	}
}

func (m *TransferPrometheusMetrics) RecordSubmission(transferType, status string) {
	m.submissions.WithLabelValues(transferType, status).Inc()
}

func (m *TransferPrometheusMetrics) RecordLookup(status string) {
	m.lookups.WithLabelValues(status).Inc()
}

func (m *TransferPrometheusMetrics) RecordProjection(leg string) {
	m.balanceDrift.WithLabelValues(leg).Inc()
}
