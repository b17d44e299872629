package aimodel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *Document {
	doc := NewDocument()
	doc.Models.Set("llama-local", ModelDefinition{
		Name:         "Llama 3.1 8B",
		Provider:     "ollama",
		ModelID:      "llama3.1:8b",
		Capabilities: []string{"text_generation", "content_creation"},
		CostPerToken: 0,
		Parameters:   map[string]any{"temperature": 0.7, "max_tokens": 2048},
	})
	doc.Models.Set("claude-sonnet", ModelDefinition{
		Name:         "Claude 3.5 Sonnet",
		Provider:     "anthropic",
		ModelID:      "anthropic/claude-3.5-sonnet",
		Capabilities: []string{"text_generation", "content_creation", "complex_reasoning"},
		CostPerToken: 0.000003,
	})
	doc.Models.Set("flux", ModelDefinition{
		Name:         "FLUX schnell",
		Provider:     "replicate",
		ModelID:      "black-forest-labs/flux-schnell",
		Capabilities: []string{"image_generation"},
		CostPerToken: 0.003,
		Parameters:   map[string]any{"width": 1024, "height": 1024, "steps": 4},
	})
	doc.RoutingRules = map[string]string{
		"simple_text":        "llama-local",
		"content_creation":   "llama-local",
		"complex_analysis":   "claude-sonnet",
		"strategic_planning": "claude-sonnet",
		"image_generation":   "flux",
	}
	doc.FallbackRules = map[string]string{
		"ollama_unavailable":       "claude-sonnet",
		"anthropic_quota_exceeded": "ollama_models_only",
	}
	return doc
}

func TestNewCatalog(t *testing.T) {
	catalog, err := NewCatalog(testDocument())
	require.NoError(t, err)

	models := catalog.Models()
	require.Len(t, models, 3)
	assert.Equal(t, []string{"llama-local", "claude-sonnet", "flux"}, []string{models[0].ID, models[1].ID, models[2].ID})
	for i, m := range models {
		assert.Equal(t, i, m.Priority)
	}

	llama, ok := catalog.Model("llama-local")
	require.True(t, ok)
	assert.Equal(t, FamilyLocalInference, llama.Family)
	assert.Equal(t, "Llama 3.1 8B", llama.Name())

	routed, ok := catalog.Route(TaskComplexAnalysis)
	require.True(t, ok)
	assert.Equal(t, "claude-sonnet", routed.ID)

	rule, ok := catalog.Fallback(FamilyHostedChat)
	require.True(t, ok)
	assert.Equal(t, FallbackCapabilityScan, rule.Kind)
	scope, scoped := rule.ScopedTo()
	assert.True(t, scoped)
	assert.Equal(t, FamilyLocalInference, scope)

	_, ok = catalog.Fallback(FamilyHostedImage)
	assert.False(t, ok)

	assert.Equal(t, []ProviderFamily{FamilyLocalInference, FamilyHostedChat, FamilyHostedImage}, catalog.Families())
}

func TestCatalogModelsByCapability(t *testing.T) {
	catalog, err := NewCatalog(testDocument())
	require.NoError(t, err)

	text := catalog.ModelsByCapability(CapabilityTextGeneration)
	require.Len(t, text, 2)
	assert.Equal(t, "llama-local", text[0].ID)
	assert.Equal(t, "claude-sonnet", text[1].ID)

	assert.Empty(t, catalog.ModelsByCapability("video_generation"))
}

func TestNewCatalogRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *Document)
	}{
		{
			name:   "no models",
			mutate: func(doc *Document) { doc.Models = nil },
		},
		{
			name: "unknown provider",
			mutate: func(doc *Document) {
				doc.Models.Set("mystery", ModelDefinition{Provider: "mystery-cloud", ModelID: "x"})
			},
		},
		{
			name: "negative cost",
			mutate: func(doc *Document) {
				doc.Models.Set("cheap", ModelDefinition{Provider: "ollama", ModelID: "x", CostPerToken: -1})
			},
		},
		{
			name:   "missing routing category",
			mutate: func(doc *Document) { delete(doc.RoutingRules, "strategic_planning") },
		},
		{
			name:   "unknown routing category",
			mutate: func(doc *Document) { doc.RoutingRules["video_generation"] = "flux" },
		},
		{
			name:   "routing target missing",
			mutate: func(doc *Document) { doc.RoutingRules["simple_text"] = "gpt-9" },
		},
		{
			name:   "fallback to same family",
			mutate: func(doc *Document) { doc.FallbackRules["ollama_unavailable"] = "llama-local" },
		},
		{
			name:   "fallback target missing",
			mutate: func(doc *Document) { doc.FallbackRules["replicate_quota_exceeded"] = "dall-e" },
		},
		{
			name:   "family scan of failing family",
			mutate: func(doc *Document) { doc.FallbackRules["ollama_unavailable"] = "ollama_models_only" },
		},
		{
			name:   "unknown fallback key",
			mutate: func(doc *Document) { doc.FallbackRules["gpu_on_fire"] = "claude-sonnet" },
		},
		{
			name: "duplicate fallback family",
			mutate: func(doc *Document) {
				doc.FallbackRules["local_inference_unavailable"] = "capability_scan"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDocument()
			tt.mutate(doc)

			_, err := NewCatalog(doc)
			require.Error(t, err)
			var loadErr *ConfigLoadError
			assert.True(t, errors.As(err, &loadErr), "expected ConfigLoadError, got %T", err)
		})
	}
}

func TestParseTaskCategory(t *testing.T) {
	for _, raw := range ValidTaskTypes() {
		category, err := ParseTaskCategory(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, string(category))
	}

	for _, raw := range []string{"", "SIMPLE_TEXT", "video", "simple-text"} {
		_, err := ParseTaskCategory(raw)
		assert.ErrorIs(t, err, ErrUnknownTaskType, raw)
	}
}

func TestRequiredCapability(t *testing.T) {
	want := map[TaskCategory]Capability{
		TaskSimpleText:        CapabilityTextGeneration,
		TaskContentCreation:   CapabilityContentCreation,
		TaskComplexAnalysis:   CapabilityComplexReasoning,
		TaskStrategicPlanning: CapabilityComplexReasoning,
		TaskImageGeneration:   CapabilityImageGeneration,
	}
	for category, capability := range want {
		got, ok := RequiredCapability(category)
		require.True(t, ok)
		assert.Equal(t, capability, got)
	}
}

func TestParamsAccessors(t *testing.T) {
	params := Params{"maxTokens": 512.0, "temperature": 0.2, "steps": 4}

	n, ok := params.Int("max_tokens", "maxTokens")
	require.True(t, ok)
	assert.Equal(t, 512, n)

	temp, ok := params.Float("temperature")
	require.True(t, ok)
	assert.InDelta(t, 0.2, temp, 1e-9)

	steps, ok := params.Int("steps")
	require.True(t, ok)
	assert.Equal(t, 4, steps)

	_, ok = params.Int("width")
	assert.False(t, ok)

	clone := params.Clone()
	clone["steps"] = 8
	assert.Equal(t, 4, params["steps"])
}
