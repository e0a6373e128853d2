package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the bridge. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// Chain reads that failed, by ledger and apperror kind
	LedgerReadFailures *prometheus.CounterVec

	// Eligibility outcomes by result ("eligible", "ineligible", "error")
	EligibilityOutcome *prometheus.CounterVec

	BatchChunks    prometheus.Counter
	BatchAddresses prometheus.Counter

	// Chain events by ledger and kind
	EventsProcessed *prometheus.CounterVec

	// Monitor errors by stage
	EventErrors *prometheus.CounterVec

	EventQueueDepth prometheus.Gauge

	// Health probe latency by probe name and status
	ProbeLatency *prometheus.HistogramVec
}

// New registers all bridge metrics on reg. Tests pass a fresh registry;
// main passes prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LedgerReadFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rosca_bridge_ledger_read_failures_total",
			Help: "Total failed ledger reads by ledger and error kind",
		}, []string{"ledger", "kind"}),

		EligibilityOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rosca_bridge_eligibility_outcomes_total",
			Help: "Total eligibility decisions by outcome",
		}, []string{"outcome"}),

		BatchChunks: f.NewCounter(prometheus.CounterOpts{
			Name: "rosca_bridge_batch_chunks_total",
			Help: "Total chunks dispatched by batch eligibility checks",
		}),

		BatchAddresses: f.NewCounter(prometheus.CounterOpts{
			Name: "rosca_bridge_batch_addresses_total",
			Help: "Total addresses submitted to batch eligibility checks",
		}),

		EventsProcessed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rosca_bridge_events_processed_total",
			Help: "Total chain events handled by ledger and kind",
		}, []string{"ledger", "kind"}),

		EventErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rosca_bridge_event_errors_total",
			Help: "Total event monitor errors by stage",
		}, []string{"stage"}),

		EventQueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "rosca_bridge_event_queue_depth",
			Help: "Chain events waiting for a handler",
		}),

		ProbeLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rosca_bridge_health_probe_duration_seconds",
			Help:    "Duration of health probes by probe and status",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"probe", "status"}),
	}
}

// IncLedgerReadFailure records a failed chain read.
func (m *Metrics) IncLedgerReadFailure(ledger, kind string) {
	if m != nil {
		m.LedgerReadFailures.WithLabelValues(ledger, kind).Inc()
	}
}

// IncEligibilityOutcome records an eligibility decision.
func (m *Metrics) IncEligibilityOutcome(outcome string) {
	if m != nil {
		m.EligibilityOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveBatch records one batch call.
func (m *Metrics) ObserveBatch(addresses, chunks int) {
	if m != nil {
		m.BatchAddresses.Add(float64(addresses))
		m.BatchChunks.Add(float64(chunks))
	}
}

func (m *Metrics) IncEventProcessed(ledger, kind string) {
	if m != nil {
		m.EventsProcessed.WithLabelValues(ledger, kind).Inc()
	}
}

func (m *Metrics) IncEventError(stage string) {
	if m != nil {
		m.EventErrors.WithLabelValues(stage).Inc()
	}
}

func (m *Metrics) SetQueueDepth(n int) {
	if m != nil {
		m.EventQueueDepth.Set(float64(n))
	}
}

// ObserveProbe records a single health probe.
func (m *Metrics) ObserveProbe(probe, status string, d time.Duration) {
	if m != nil {
		m.ProbeLatency.WithLabelValues(probe, status).Observe(d.Seconds())
	}
}
