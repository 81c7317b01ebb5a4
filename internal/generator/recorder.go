package generator

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeFallback  Outcome = "fallback"
)

// OutcomeRecorder observes which variant each successful generation produced.
type OutcomeRecorder interface {
	Record(ctx context.Context, outcome Outcome)
}

type otelRecorder struct {
	outcomes metric.Int64Counter
}

// NewOTelRecorder counts outcomes on idea.generation.outcomes. A nil provider
// means the global one installed by telemetry.Setup.
func NewOTelRecorder(provider metric.MeterProvider) OutcomeRecorder {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	counter, err := provider.Meter("github.com/BerylCAtieno/business-idea-generator/internal/generator").Int64Counter(
		"idea.generation.outcomes",
		metric.WithDescription("Business idea generations by outcome"),
	)
	if err != nil {
		slog.Warn("failed to create outcome counter", "error", err)
	}
	return &otelRecorder{outcomes: counter}
}

func (r *otelRecorder) Record(ctx context.Context, outcome Outcome) {
	if r.outcomes == nil {
		return
	}
	r.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))
}
