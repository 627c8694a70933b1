package otel

import (
	"context"

	prom "go.opentelemetry.io/otel/exporters/prometheus"

	otel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	resource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	config "github.com/mcp-bridge/mcp-bridge/config"
)

type MeterProvider = sdkmetric.MeterProvider

// OpenTelemetry records the bridge's loop metrics: model calls, tool
// executions and terminal turn outcomes.
//
//go:generate mockgen -source=otel.go -destination=../tests/mocks/otel.go -package=mocks
type OpenTelemetry interface {
	Init(config config.Config) error
	RecordModelCall(ctx context.Context, provider, model string, durationMs float64, failed bool)
	RecordToolCall(ctx context.Context, tool string, durationMs float64, failed bool)
	RecordTurnOutcome(ctx context.Context, provider, state string)
}

type OpenTelemetryImpl struct {
	meterProvider *MeterProvider

	modelCallCounter metric.Int64Counter
	toolCallCounter  metric.Int64Counter
	outcomeCounter   metric.Int64Counter

	modelLatency metric.Float64Histogram
	toolLatency  metric.Float64Histogram
}

// Init wires the metric pipeline through the Prometheus exporter so
// the api package can serve it at /metrics.
func (o *OpenTelemetryImpl) Init(config config.Config) error {
	exporter, err := prom.New()
	if err != nil {
		return err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(config.ApplicationName),
		)),
	)

	otel.SetMeterProvider(mp)
	o.meterProvider = mp

	meter := mp.Meter("mcp-bridge")

	var errs []error
	o.modelCallCounter, err = meter.Int64Counter(
		"bridge.model_calls",
		metric.WithDescription("Number of model calls issued by the loop"),
	)
	errs = append(errs, err)

	o.toolCallCounter, err = meter.Int64Counter(
		"bridge.tool_calls",
		metric.WithDescription("Number of tool invocations executed"),
	)
	errs = append(errs, err)

	o.outcomeCounter, err = meter.Int64Counter(
		"bridge.turn_outcomes",
		metric.WithDescription("Terminal loop states per user turn"),
	)
	errs = append(errs, err)

	o.modelLatency, err = meter.Float64Histogram(
		"bridge.model_call_duration",
		metric.WithDescription("Model call duration"),
		metric.WithUnit("ms"),
	)
	errs = append(errs, err)

	o.toolLatency, err = meter.Float64Histogram(
		"bridge.tool_call_duration",
		metric.WithDescription("Tool invocation duration"),
		metric.WithUnit("ms"),
	)
	errs = append(errs, err)

	for _, e := range errs {
		if e != nil {
			return e
		}
	}

	return nil
}

func (o *OpenTelemetryImpl) RecordModelCall(ctx context.Context, provider, model string, durationMs float64, failed bool) {
	if o.modelCallCounter == nil {
		return // Not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String("provider", provider),
		attribute.String("model", model),
		attribute.Bool("failed", failed),
	}

	o.modelCallCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	o.modelLatency.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

func (o *OpenTelemetryImpl) RecordToolCall(ctx context.Context, tool string, durationMs float64, failed bool) {
	if o.toolCallCounter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("tool", tool),
		attribute.Bool("failed", failed),
	}

	o.toolCallCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	o.toolLatency.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

func (o *OpenTelemetryImpl) RecordTurnOutcome(ctx context.Context, provider, state string) {
	if o.outcomeCounter == nil {
		return
	}

	o.outcomeCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("state", state),
	))
}
