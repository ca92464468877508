package backoff

import (
	"math"
	"time"
)

// JitteredBuilder accumulates the configuration of a Jittered. Setters return
// an updated copy, so one builder can serve as a template for many retry
// sequences. Nothing is validated unless Validate is called.
type JitteredBuilder struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64

	source  Source
	name    string
	metrics Metrics
}

func NewJitteredBuilder() JitteredBuilder {
	return JitteredBuilder{}
}

// Initial sets the first delay. Zero selects DefaultInitial.
func (b JitteredBuilder) Initial(d time.Duration) JitteredBuilder {
	b.initialDelay = d
	return b
}

// Max sets the upper bound of every jittered delay. Zero selects DefaultMax.
func (b JitteredBuilder) Max(d time.Duration) JitteredBuilder {
	b.maxDelay = d
	return b
}

// Multiplier sets the growth factor of the jitter ceiling. Zero selects
// DefaultMultiplier.
func (b JitteredBuilder) Multiplier(m float64) JitteredBuilder {
	b.multiplier = m
	return b
}

func (b JitteredBuilder) Source(s Source) JitteredBuilder {
	b.source = s
	return b
}

func (b JitteredBuilder) Name(name string) JitteredBuilder {
	b.name = name
	return b
}

func (b JitteredBuilder) Metrics(m Metrics) JitteredBuilder {
	b.metrics = m
	return b
}

// Build returns a fresh generator. The jitter baseline is always seeded to
// DefaultInitial, independent of the configured initial delay.
func (b JitteredBuilder) Build() *Jittered {
	return NewJittered(
		WithInitial(b.initialDelay),
		WithMax(b.maxDelay),
		WithMultiplier(b.multiplier),
		WithSource(b.source),
		WithName(b.name),
		WithMetrics(b.metrics),
	)
}

// Validate reports configurations that produce degenerate sequences.
// Build accepts them regardless.
func (b JitteredBuilder) Validate() error {
	if b.initialDelay < 0 {
		return &ValidationError{Field: "initial", Message: "must not be negative"}
	}

	if b.maxDelay < 0 {
		return &ValidationError{Field: "max", Message: "must not be negative"}
	}

	if math.IsNaN(b.multiplier) || math.IsInf(b.multiplier, 0) {
		return &ValidationError{Field: "multiplier", Message: "must be finite"}
	}

	if b.multiplier != 0 && b.multiplier <= 1 {
		return &ValidationError{Field: "multiplier", Message: "must be greater than 1"}
	}

	initialDelay, maxDelay := b.initialDelay, b.maxDelay
	if initialDelay == 0 {
		initialDelay = DefaultInitial
	}
	if maxDelay == 0 {
		maxDelay = DefaultMax
	}

	if initialDelay > maxDelay {
		return &ValidationError{Field: "initial", Message: "must not exceed max"}
	}

	return nil
}
