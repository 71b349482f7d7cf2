package metrics

import (
	"time"

	"github.com/nspcc-dev/neofs-frag/pkg/fragment"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace         = "neofs_frag"
	fragmentSubsystem = "fragment"

	operationLabelKey = "operation"
	resultLabelKey    = "result"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// FragmentMetrics collects split and reassembly statistics in its own
// registry, so several instances never clash.
type FragmentMetrics struct {
	reg *prometheus.Registry

	fragments *prometheus.CounterVec
	payload   *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var _ fragment.Metrics = (*FragmentMetrics)(nil)

// NewFragmentMetrics returns registered fragment metrics.
func NewFragmentMetrics() *FragmentMetrics {
	var (
		fragments = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: fragmentSubsystem,
			Name:      "files_total",
			Help:      "Number of fragment files written or read",
		}, []string{operationLabelKey})

		payload = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: fragmentSubsystem,
			Name:      "payload_bytes_total",
			Help:      "Number of payload bytes written to or read from data fragments",
		}, []string{operationLabelKey})

		duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: fragmentSubsystem,
			Name:      "operation_duration_seconds",
			Help:      "Split and reassembly handling time",
		}, []string{operationLabelKey, resultLabelKey})
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(fragments, payload, duration)

	return &FragmentMetrics{
		reg:       reg,
		fragments: fragments,
		payload:   payload,
		duration:  duration,
	}
}

// AddFragments implements fragment.Metrics.
func (m *FragmentMetrics) AddFragments(op string, n int) {
	m.fragments.WithLabelValues(op).Add(float64(n))
}

// AddPayloadBytes implements fragment.Metrics.
func (m *FragmentMetrics) AddPayloadBytes(op string, n int64) {
	m.payload.WithLabelValues(op).Add(float64(n))
}

// ObserveOperation implements fragment.Metrics.
func (m *FragmentMetrics) ObserveOperation(op string, d time.Duration, success bool) {
	res := resultSuccess
	if !success {
		res = resultFailure
	}
	m.duration.WithLabelValues(op, res).Observe(d.Seconds())
}

// Gatherer returns the registry holding the metrics.
func (m *FragmentMetrics) Gatherer() prometheus.Gatherer {
	return m.reg
}

// WriteToTextfile writes current values to the file in the text exposition
// format consumed by the node_exporter textfile collector.
func (m *FragmentMetrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
