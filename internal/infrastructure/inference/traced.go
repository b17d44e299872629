package inference

import (
	"context"

	"ai-router/internal/domain/aimodel"
	"ai-router/internal/domain/airouter"
	"ai-router/internal/infrastructure/metrics"
	"ai-router/internal/infrastructure/observability"

	"go.opentelemetry.io/otel/trace"
)

type tracedExecutor struct {
	next airouter.Executor
}

// Traced wraps every executor so that each backend call gets its own span
// and its usage counted in the token and image metrics.
func Traced(executors airouter.Executors) airouter.Executors {
	out := make(airouter.Executors, 0, len(executors))
	for _, executor := range executors {
		out = append(out, tracedExecutor{next: executor})
	}
	return out
}

func (t tracedExecutor) Family() aimodel.ProviderFamily {
	return t.next.Family()
}

func (t tracedExecutor) Execute(ctx context.Context, model *aimodel.Model, content string, params aimodel.Params) (*airouter.CallResult, error) {
	ctx, span := observability.StartSpan(ctx, "ai.execute",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(observability.WithModelAttrs(model.ID, string(model.Family), model.BackendModelID)...),
	)
	defer span.End()

	result, err := t.next.Execute(ctx, model, content, params)
	if err != nil {
		observability.RecordError(ctx, err)
		return nil, err
	}
	usage := result.Usage
	observability.AddSpanAttributes(ctx,
		observability.WithUsageAttrs(usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens, usage.ImagesGenerated)...)
	metrics.RecordTokens(model.ID, string(model.Family), usage.PromptTokens, usage.CompletionTokens)
	metrics.RecordImages(model.ID, usage.ImagesGenerated)
	return result, nil
}
