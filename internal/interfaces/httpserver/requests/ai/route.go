package airequests

import (
	"ai-router/internal/domain/aimodel"
	"ai-router/internal/domain/airouter"
)

// RouteTaskRequest is the body of POST /v1/ai/route and POST /api/ai.
type RouteTaskRequest struct {
	TaskType string            `json:"taskType" validate:"required"`
	Content  string            `json:"content" validate:"required"`
	Options  *RouteTaskOptions `json:"options,omitempty" validate:"omitempty"`
}

// RouteTaskOptions are per-call overrides of the model defaults.
type RouteTaskOptions struct {
	MaxTokens   *int     `json:"maxTokens,omitempty" validate:"omitempty,min=1"`
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,min=0,max=2"`
	// Context is handed back to prompt construction untouched.
	Context    any            `json:"context,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// ToOptions converts the wire options into router options.
func (r *RouteTaskRequest) ToOptions() airouter.Options {
	if r.Options == nil {
		return airouter.Options{}
	}
	return airouter.Options{
		MaxTokens:   r.Options.MaxTokens,
		Temperature: r.Options.Temperature,
		Context:     r.Options.Context,
		Parameters:  aimodel.Params(r.Options.Parameters),
	}
}
