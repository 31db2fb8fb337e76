package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	GuardDecisions    *prometheus.CounterVec
	AuditEvents       prometheus.Counter
	AuditWriteFailed  prometheus.Counter
	DomainsCreated    prometheus.Counter
	RequestDuration   *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers metrics on the provided registerer. Tests pass their own
// registry to avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GuardDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eventlive_guard_decisions_total",
			Help: "Guard evaluations by scope and outcome.",
		}, []string{"scope", "outcome"}),
		AuditEvents: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventlive_audit_events_total",
			Help: "Audit entries recorded.",
		}),
		AuditWriteFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventlive_audit_write_failures_total",
			Help: "Audit entries that could not be persisted. Non-fatal but must alert.",
		}),
		DomainsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventlive_domains_created_total",
			Help: "Custom domains registered across all agencies.",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eventlive_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// IncGuardDecision records one guard evaluation outcome.
func (m *Metrics) IncGuardDecision(scope, outcome string) {
	if m == nil {
		return
	}
	m.GuardDecisions.WithLabelValues(scope, outcome).Inc()
}
