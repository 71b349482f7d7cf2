package fragment

import "time"

// Operation names passed to Metrics.
const (
	OpSplit      = "split"
	OpReassemble = "reassemble"
)

// Metrics receives split and reassembly statistics.
type Metrics interface {
	AddFragments(op string, n int)
	AddPayloadBytes(op string, n int64)
	ObserveOperation(op string, d time.Duration, success bool)
}

type noopMetrics struct{}

func (noopMetrics) AddFragments(string, int) {}
func (noopMetrics) AddPayloadBytes(string, int64) {}
func (noopMetrics) ObserveOperation(string, time.Duration, bool) {}
