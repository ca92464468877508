package backoff

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics:
// backoff_pauses_total (Counter) - Total number of delays handed out
// * name (string) - The name of the generator
// * jittered (bool) - Whether the delay was drawn from the jitter range
//
// backoff_clamped_total (Counter) - Total number of delays clamped to the maximum
// * name (string) - The name of the generator
//
// backoff_pause_duration_milliseconds (Histogram) - Delays handed out in milliseconds
// * name (string) - The name of the generator
// * jittered (bool) - Whether the delay was drawn from the jitter range
//
// backoff_iteration (Gauge) - Number of delays requested from the generator so far
// * name (string) - The name of the generator

const (
	instrumentationName    = "github.com/hugolhafner/backoffkit/backoff"
	instrumentationVersion = "v0.1.0" // x-release-please
)

const (
	unitPause        = "{pause}"
	unitIteration    = "{iteration}"
	unitMilliseconds = "ms"
)

var _ Metrics = (*OTelMetrics)(nil)

type OTelMetrics struct {
	pausesTotal   metric.Int64Counter
	clampedTotal  metric.Int64Counter
	pauseDuration metric.Float64Histogram
	iteration     metric.Int64Gauge

	attributes []attribute.KeyValue
}

type OTelConfig struct {
	MeterProvider metric.MeterProvider
	MetricPrefix  string
	Attributes    []attribute.KeyValue
}

type OTelOption func(*OTelConfig)

func WithMeterProvider(meterProvider metric.MeterProvider) OTelOption {
	return func(cfg *OTelConfig) {
		cfg.MeterProvider = meterProvider
	}
}

func WithMetricPrefix(prefix string) OTelOption {
	return func(cfg *OTelConfig) {
		cfg.MetricPrefix = prefix
	}
}

// WithAttributes adds attributes to every recorded measurement
func WithAttributes(attrs []attribute.KeyValue) OTelOption {
	return func(cfg *OTelConfig) {
		copied := make([]attribute.KeyValue, len(attrs))
		copy(copied, attrs)
		cfg.Attributes = copied
	}
}

func NewOTelMetrics(opts ...OTelOption) (*OTelMetrics, error) {
	cfg := &OTelConfig{
		MeterProvider: otel.GetMeterProvider(),
		MetricPrefix:  "backoff_",
		Attributes:    []attribute.KeyValue{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.MeterProvider.Meter(instrumentationName, metric.WithInstrumentationVersion(instrumentationVersion))

	pausesTotal, err := meter.Int64Counter(
		cfg.MetricPrefix+"pauses_total",
		metric.WithDescription("Total number of delays handed out"),
		metric.WithUnit(unitPause),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pauses_total counter: %w", err)
	}

	clampedTotal, err := meter.Int64Counter(
		cfg.MetricPrefix+"clamped_total",
		metric.WithDescription("Total number of delays clamped to the maximum"),
		metric.WithUnit(unitPause),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create clamped_total counter: %w", err)
	}

	pauseDuration, err := meter.Float64Histogram(
		cfg.MetricPrefix+"pause_duration_milliseconds",
		metric.WithDescription("Delays handed out in milliseconds"),
		metric.WithUnit(unitMilliseconds),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pause_duration_milliseconds histogram: %w", err)
	}

	iteration, err := meter.Int64Gauge(
		cfg.MetricPrefix+"iteration",
		metric.WithDescription("Number of delays requested from the generator so far"),
		metric.WithUnit(unitIteration),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create iteration gauge: %w", err)
	}

	return &OTelMetrics{
		pausesTotal:   pausesTotal,
		clampedTotal:  clampedTotal,
		pauseDuration: pauseDuration,
		iteration:     iteration,
		attributes:    cfg.Attributes,
	}, nil
}

func (m *OTelMetrics) baseAttributes(name string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(m.attributes)+2)
	attrs = append(attrs, m.attributes...)
	return append(attrs, attribute.String("name", name))
}

func (m *OTelMetrics) RecordPause(ctx context.Context, pause Pause) {
	baseAttrs := m.baseAttributes(pause.Name)
	pauseAttrs := append(baseAttrs, attribute.Bool("jittered", pause.Jittered))

	m.pausesTotal.Add(ctx, 1, metric.WithAttributes(pauseAttrs...))
	m.pauseDuration.Record(ctx, float64(pause.Delay.Milliseconds()), metric.WithAttributes(pauseAttrs...))
	m.iteration.Record(ctx, int64(pause.Iteration), metric.WithAttributes(baseAttrs...))

	if pause.Clamped {
		m.clampedTotal.Add(ctx, 1, metric.WithAttributes(baseAttrs...))
	}
}
