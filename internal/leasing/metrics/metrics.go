// Package metrics exposes Prometheus instrumentation for the signing flow.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the signing flow collectors. Construct it once per process;
// promauto registers with the default registry and panics on duplicates.
type Metrics struct {
	signaturesRecorded *prometheus.CounterVec
	leaseActivations   prometheus.Counter
	signFailures       *prometheus.CounterVec
	signLatency        prometheus.Histogram
}

// New creates and registers the signing metrics.
func New() *Metrics {
	return &Metrics{
		signaturesRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "leasegate_signatures_recorded_total",
			Help: "Total signatures recorded, by party kind",
		}, []string{"party"}),
		leaseActivations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leasegate_lease_activations_total",
			Help: "Total leases activated after the final signature",
		}),
		signFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "leasegate_sign_failures_total",
			Help: "Total rejected sign attempts, by reason",
		}, []string{"reason"}),
		signLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "leasegate_sign_latency_seconds",
			Help:    "Latency of the sign operation including the transaction",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordSignature counts one accepted signature for the given party kind.
func (m *Metrics) RecordSignature(party string) {
	if m == nil {
		return
	}
	m.signaturesRecorded.WithLabelValues(party).Inc()
}

// RecordActivation counts one lease activation.
func (m *Metrics) RecordActivation() {
	if m == nil {
		return
	}
	m.leaseActivations.Inc()
}

// RecordSignFailure counts one rejected sign attempt.
func (m *Metrics) RecordSignFailure(reason string) {
	if m == nil {
		return
	}
	m.signFailures.WithLabelValues(reason).Inc()
}

// ObserveSignLatency records how long a sign operation took.
func (m *Metrics) ObserveSignLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.signLatency.Observe(d.Seconds())
}
