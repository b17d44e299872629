package observability

import (
	"go.opentelemetry.io/otel/attribute"
)

// Standard attribute keys
const (
	AttrRequestID        = "request_id"
	AttrTaskType         = "ai.task_type"
	AttrModel            = "ai.model"
	AttrProvider         = "ai.provider"
	AttrBackendModel     = "ai.backend_model"
	AttrRoutedFrom       = "ai.routed_from"
	AttrTokensPrompt     = "ai.usage.prompt_tokens"
	AttrTokensCompletion = "ai.usage.completion_tokens"
	AttrTokensTotal      = "ai.usage.total_tokens"
	AttrImages           = "ai.usage.images"
)

// WithModelAttrs returns the attributes identifying a backend call.
func WithModelAttrs(modelID, provider, backendModel string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(AttrModel, modelID),
		attribute.String(AttrProvider, provider),
	}
	if backendModel != "" {
		attrs = append(attrs, attribute.String(AttrBackendModel, backendModel))
	}
	return attrs
}

// WithUsageAttrs returns usage attributes, skipping zero counters.
func WithUsageAttrs(promptTokens, completionTokens, totalTokens, images int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{}
	if promptTokens > 0 {
		attrs = append(attrs, attribute.Int(AttrTokensPrompt, promptTokens))
	}
	if completionTokens > 0 {
		attrs = append(attrs, attribute.Int(AttrTokensCompletion, completionTokens))
	}
	if totalTokens > 0 {
		attrs = append(attrs, attribute.Int(AttrTokensTotal, totalTokens))
	}
	if images > 0 {
		attrs = append(attrs, attribute.Int(AttrImages, images))
	}
	return attrs
}
