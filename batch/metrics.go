package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/ttreco/reco"
)

// Metrics are the Prometheus instruments updated by a Runner.
type Metrics struct {
	// Events counts outcomes. Labels: status, reason.
	Events *prometheus.CounterVec

	// Seconds measures per-event reconstruction latency.
	Seconds prometheus.Histogram
}

// NewMetrics registers the instruments on reg. Like promauto, it panics
// when the names are already registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ttreco",
			Name:      "events_total",
			Help:      "Reconstructed events by status and rejection reason",
		}, []string{"status", "reason"}),
		Seconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ttreco",
			Name:      "event_seconds",
			Help:      "Per-event reconstruction latency in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) observe(out reco.Outcome, seconds float64) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(out.Status.String(), out.Reason.String()).Inc()
	m.Seconds.Observe(seconds)
}
