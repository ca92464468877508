package backoff

import (
	"context"
	"math"
	"time"
)

const (
	DefaultInitial    = time.Second
	DefaultMax        = 30 * time.Second
	DefaultMultiplier = 2.0
)

var _ Sequence = (*Jittered)(nil)

// Jittered hands out exponentially growing delays with full jitter, as
// described in https://www.awsarchitectureblog.com/2015/03/backoff.html.
//
// The first delay is the initial value, neither jittered nor clamped. Every
// later delay is drawn uniformly from [1, floor(last*multiplier)+1] and
// clamped to the maximum, where last is the previous jittered delay. The
// jitter baseline starts at DefaultInitial whatever initial is configured, so
// with the default multiplier the second delay is at most 2s+1ns.
//
// Zero-valued settings fall back to DefaultInitial, DefaultMax and
// DefaultMultiplier on first use. The zero Jittered is ready to use.
//
// A Jittered carries state between calls and must not be shared between
// goroutines or reused across unrelated retry sequences.
type Jittered struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64

	last      time.Duration
	iteration uint64

	source  Source
	name    string
	metrics Metrics
}

type JitteredOption func(*Jittered)

func WithInitial(d time.Duration) JitteredOption {
	return func(j *Jittered) {
		j.initialDelay = d
	}
}

func WithMax(d time.Duration) JitteredOption {
	return func(j *Jittered) {
		j.maxDelay = d
	}
}

func WithMultiplier(m float64) JitteredOption {
	return func(j *Jittered) {
		j.multiplier = m
	}
}

// WithSource replaces the process-wide math/rand/v2 generator
func WithSource(s Source) JitteredOption {
	return func(j *Jittered) {
		j.source = s
	}
}

// WithName sets the name reported to metrics
func WithName(name string) JitteredOption {
	return func(j *Jittered) {
		j.name = name
	}
}

// WithMetrics sets the metrics reporter.
// If unset, the global metrics instance is used.
func WithMetrics(m Metrics) JitteredOption {
	return func(j *Jittered) {
		j.metrics = m
	}
}

func NewJittered(opts ...JitteredOption) *Jittered {
	j := &Jittered{
		last: DefaultInitial,
	}

	for _, opt := range opts {
		opt(j)
	}

	return j
}

// Pause returns the next delay the caller should wait before retrying.
func (j *Jittered) Pause() time.Duration {
	j.iteration++
	j.applyDefaults()

	if j.iteration == 1 {
		j.record(Pause{Iteration: j.iteration, Delay: j.initialDelay})
		return j.initialDelay
	}

	bound := uintBound(float64(j.last) * j.multiplier)
	candidate := drawInclusive(j.source, bound)
	if candidate < math.MaxUint64 {
		candidate++
	}

	delay, clamped := clamp(candidate, j.maxDelay)
	j.last = delay

	ceiling := bound
	if ceiling < math.MaxUint64 {
		ceiling++
	}

	j.record(Pause{
		Iteration: j.iteration,
		Delay:     delay,
		Ceiling:   ceiling,
		Jittered:  true,
		Clamped:   clamped,
	})

	return delay
}

func (j *Jittered) applyDefaults() {
	if j.initialDelay == 0 {
		j.initialDelay = DefaultInitial
	}

	if j.maxDelay == 0 {
		j.maxDelay = DefaultMax
	}

	if j.multiplier == 0 {
		j.multiplier = DefaultMultiplier
	}

	// only the zero Jittered reaches here unseeded; every delay after the
	// first is at least 1ns or a non-zero max
	if j.last == 0 {
		j.last = DefaultInitial
	}

	if j.source == nil {
		j.source = globalSource{}
	}
}

func clamp(candidate uint64, limit time.Duration) (time.Duration, bool) {
	if limit <= 0 || candidate > uint64(limit) {
		return limit, true
	}

	return time.Duration(candidate), false
}

func (j *Jittered) metricsReporter() Metrics {
	if j.metrics != nil {
		return j.metrics
	}

	return GetGlobalMetrics()
}

func (j *Jittered) record(p Pause) {
	p.Name = j.name
	j.metricsReporter().RecordPause(context.Background(), p)
}

// Iterations returns how many times Pause has been called.
func (j *Jittered) Iterations() uint64 {
	return j.iteration
}

// Initial returns the configured initial delay, or the default once Pause has
// resolved it.
func (j *Jittered) Initial() time.Duration {
	return j.initialDelay
}

func (j *Jittered) Max() time.Duration {
	return j.maxDelay
}

func (j *Jittered) Multiplier() float64 {
	return j.multiplier
}

func (j *Jittered) Name() string {
	return j.name
}
