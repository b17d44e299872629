package aimodel

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ModelDefinition is one entry of the models section as written in the document.
type ModelDefinition struct {
	Name          string         `json:"name" yaml:"name"`
	Provider      string         `json:"provider" yaml:"provider"`
	ModelID       string         `json:"model_id" yaml:"model_id"`
	Capabilities  []string       `json:"capabilities" yaml:"capabilities"`
	ContextWindow int            `json:"context_window" yaml:"context_window"`
	CostPerToken  float64        `json:"cost_per_token" yaml:"cost_per_token"`
	UseCases      []string       `json:"use_cases,omitempty" yaml:"use_cases,omitempty"`
	Parameters    map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Document is the parsed configuration document. Models keeps declaration
// order, which becomes the registry priority order.
type Document struct {
	Models        *orderedmap.OrderedMap[string, ModelDefinition] `json:"models"`
	RoutingRules  map[string]string                               `json:"routing_rules"`
	FallbackRules map[string]string                               `json:"fallback_rules"`
}

// NewDocument returns an empty document ready to be filled in order.
func NewDocument() *Document {
	return &Document{
		Models:        orderedmap.New[string, ModelDefinition](),
		RoutingRules:  map[string]string{},
		FallbackRules: map[string]string{},
	}
}
