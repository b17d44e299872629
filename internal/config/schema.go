package config

import (
	"sync"

	"github.com/invopop/jsonschema"
)

type modelEntryShape struct {
	Name          string         `json:"name,omitempty" jsonschema:"description=Display name reported in call results"`
	Provider      string         `json:"provider" jsonschema:"required,enum=ollama,enum=local_inference,enum=anthropic,enum=openrouter,enum=openai,enum=hosted_chat,enum=replicate,enum=hosted_image"`
	ModelID       string         `json:"model_id" jsonschema:"required,description=Identifier passed to the backend"`
	Capabilities  []string       `json:"capabilities" jsonschema:"required,uniqueItems=true,example=text_generation,example=content_creation,example=complex_reasoning,example=image_generation"`
	ContextWindow int            `json:"context_window,omitempty" jsonschema:"minimum=0"`
	CostPerToken  float64        `json:"cost_per_token" jsonschema:"minimum=0"`
	UseCases      []string       `json:"use_cases,omitempty"`
	Parameters    map[string]any `json:"parameters,omitempty" jsonschema:"description=Default call options such as temperature or max_tokens or width"`
}

type routingRulesShape struct {
	SimpleText        string `json:"simple_text" jsonschema:"required"`
	ContentCreation   string `json:"content_creation" jsonschema:"required"`
	ComplexAnalysis   string `json:"complex_analysis" jsonschema:"required"`
	StrategicPlanning string `json:"strategic_planning" jsonschema:"required"`
	ImageGeneration   string `json:"image_generation" jsonschema:"required"`
}

type modelDocumentShape struct {
	Models        map[string]modelEntryShape `json:"models" jsonschema:"required,minProperties=1"`
	RoutingRules  routingRulesShape          `json:"routing_rules" jsonschema:"required"`
	FallbackRules map[string]string          `json:"fallback_rules,omitempty" jsonschema:"description=Failure key (e.g. ollama_unavailable) to a model id or capability_scan or <family>_models_only"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
)

// ModelDocumentSchema returns the JSON schema of the model document.
func ModelDocumentSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		reflector := &jsonschema.Reflector{
			AllowAdditionalProperties: false,
			DoNotReference:            true,
			ExpandedStruct:            true,
		}
		schema = reflector.Reflect(&modelDocumentShape{})
		schema.Title = "AI Router Model Configuration"
		schema.Description = "Models, routing rules and fallback rules loaded at startup"
	})
	return schema
}
