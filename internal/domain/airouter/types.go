package airouter

import (
	"context"
	"time"

	"ai-router/internal/domain/aimodel"
)

// Usage is the normalized usage block of a call. Token fields are zero for
// image backends and ImagesGenerated is zero for text backends.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
	ImagesGenerated  int `json:"images_generated,omitempty"`
}

// CallResult is the normalized output of every backend.
type CallResult struct {
	Content    string                 `json:"content"`
	Artifacts  []string               `json:"artifacts,omitempty"`
	ModelID    string                 `json:"model_id"`
	ModelName  string                 `json:"model"`
	Provider   aimodel.ProviderFamily `json:"provider"`
	RoutedFrom string                 `json:"routed_from,omitempty"`
	Usage      Usage                  `json:"usage"`
}

// Options are caller overrides applied on top of a model's default parameters.
type Options struct {
	MaxTokens   *int
	Temperature *float64
	// Context is passed through untouched for the caller's own prompt building.
	Context any
	// Parameters carries any other backend parameter, such as width or steps.
	Parameters aimodel.Params
}

// Executor runs a call against one provider family.
type Executor interface {
	Family() aimodel.ProviderFamily
	Execute(ctx context.Context, model *aimodel.Model, content string, params aimodel.Params) (*CallResult, error)
}

// AvailabilityChecker answers whether a model can serve requests right now.
// Implementations must not panic and must return within a bounded time;
// any fault is reported as unavailable.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, model *aimodel.Model) bool
}

// RouteObserver is told about routing outcomes so metrics and health
// tracking can react. Calls happen on the request path and must be cheap.
type RouteObserver interface {
	ObserveExecution(model *aimodel.Model, category aimodel.TaskCategory, elapsed time.Duration, err error)
	ObserveFallback(category aimodel.TaskCategory, from, to *aimodel.Model)
}

// UsageEvent describes a completed call for the usage logger.
type UsageEvent struct {
	Model     *aimodel.Model
	Category  aimodel.TaskCategory
	Usage     Usage
	RequestID string
}

// UsageRecorder accepts usage events without blocking the caller.
type UsageRecorder interface {
	Record(event UsageEvent)
}
