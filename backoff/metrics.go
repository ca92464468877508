package backoff

import (
	"context"
	"sync/atomic"
	"time"
)

var _ Metrics = (*NoopMetrics)(nil)

// _globalMetrics holds a metricsHolder so implementations of different
// concrete types can be swapped in
var _globalMetrics = atomic.Value{}

type metricsHolder struct {
	metrics Metrics
}

// Pause describes a single delay handed out by a generator
type Pause struct {
	Name      string
	Iteration uint64
	Delay     time.Duration

	// Ceiling is the largest value the jitter draw could produce before
	// clamping. Zero for the unjittered first delay.
	Ceiling uint64

	Jittered bool
	Clamped  bool
}

// Metrics defines the interface for backoff instrumentation
type Metrics interface {
	// RecordPause records a delay returned by Pause
	RecordPause(ctx context.Context, pause Pause)
}

// NoopMetrics is a no-operation implementation of the Metrics interface
type NoopMetrics struct{}

func (n *NoopMetrics) RecordPause(ctx context.Context, pause Pause) {}

// SetGlobalMetrics sets the global Metrics implementation
func SetGlobalMetrics(m Metrics) {
	if m == nil {
		m = &NoopMetrics{}
	}

	_globalMetrics.Store(metricsHolder{metrics: m})
}

// GetGlobalMetrics returns the global Metrics implementation
func GetGlobalMetrics() Metrics {
	h, ok := _globalMetrics.Load().(metricsHolder)
	if !ok {
		return &NoopMetrics{}
	}
	return h.metrics
}
