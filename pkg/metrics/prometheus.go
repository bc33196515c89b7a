package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	ratesResolved  *prometheus.CounterVec
	providerErrors *prometheus.CounterVec
	comparisons    *prometheus.CounterVec
	auditDelivered *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		ratesResolved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbench_rates_resolved_total",
				Help: "Total rates resolved, by source and currency",
			},
			[]string{"source", "currency"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbench_provider_errors_total",
				Help: "Total rate provider failures",
			},
			[]string{"provider"},
		),
		comparisons: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbench_comparisons_total",
				Help: "Total comparison runs, by fx mode",
			},
			[]string{"mode"},
		),
		auditDelivered: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbench_audit_records_delivered_total",
				Help: "Audit records delivered, by sink",
			},
			[]string{"sink"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbench_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxbench_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordRateResolved records one resolved rate by source and currency.
func (r *Recorder) RecordRateResolved(source, currency string) {
	r.ratesResolved.WithLabelValues(source, currency).Inc()
}

// RecordProviderError records a live provider failure.
func (r *Recorder) RecordProviderError(provider string) {
	r.providerErrors.WithLabelValues(provider).Inc()
}

// RecordComparison records one comparison run.
func (r *Recorder) RecordComparison(mode string) {
	r.comparisons.WithLabelValues(mode).Inc()
}

// RecordAuditDelivered records audit records handed to a sink.
func (r *Recorder) RecordAuditDelivered(sink string, count int) {
	r.auditDelivered.WithLabelValues(sink).Add(float64(count))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
