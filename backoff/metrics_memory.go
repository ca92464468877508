package backoff

import (
	"context"
	"sync/atomic"
)

type InMemoryMetrics struct {
	pausesTotal    atomic.Int64
	pausesJittered atomic.Int64
	pausesClamped  atomic.Int64

	delayTotal atomic.Int64
	delayLast  atomic.Int64
	iteration  atomic.Int64
}

var _ Metrics = (*InMemoryMetrics)(nil)

func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{}
}

func (m *InMemoryMetrics) RecordPause(_ context.Context, pause Pause) {
	m.pausesTotal.Add(1)
	if pause.Jittered {
		m.pausesJittered.Add(1)
	}
	if pause.Clamped {
		m.pausesClamped.Add(1)
	}

	m.delayTotal.Add(pause.Delay.Milliseconds())
	m.delayLast.Store(pause.Delay.Milliseconds())
	m.iteration.Store(int64(pause.Iteration))
}

func (m *InMemoryMetrics) GetMetrics() map[string]int64 {
	return map[string]int64{
		"pauses_total":    m.pausesTotal.Load(),
		"pauses_jittered": m.pausesJittered.Load(),
		"pauses_clamped":  m.pausesClamped.Load(),
		"delay_total":     m.delayTotal.Load(),
		"delay_last":      m.delayLast.Load(),
		"iteration":       m.iteration.Load(),
	}
}
