package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ai-router/internal/domain/aimodel"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func assertConfigLoadError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var loadErr *aimodel.ConfigLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *aimodel.ConfigLoadError, got %T: %v", err, err)
	}
}

func modelIDs(catalog *aimodel.Catalog) []string {
	var ids []string
	for _, m := range catalog.Models() {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestLoadCatalogBundledConfig(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join("..", "..", "config", "models.json"))
	if err != nil {
		t.Fatalf("load bundled config: %v", err)
	}

	want := []string{"llama3-8b", "mistral-7b", "claude-3-5-sonnet", "flux-schnell"}
	got := modelIDs(catalog)
	if len(got) != len(want) {
		t.Fatalf("models = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("models[%d] = %s, want %s (declaration order must be kept)", i, got[i], want[i])
		}
	}

	for _, category := range aimodel.TaskCategories {
		if _, ok := catalog.Route(category); !ok {
			t.Fatalf("no route for %s", category)
		}
	}

	flux, _ := catalog.Model("flux-schnell")
	if steps, ok := flux.Parameters.Int("steps"); !ok || steps != 4 {
		t.Fatalf("flux steps = %v (%v), want 4", steps, ok)
	}
}

func TestLoadModelDocumentYAMLKeepsOrder(t *testing.T) {
	path := writeTempFile(t, "models.yaml", `
models:
  zeta:
    name: Zeta
    provider: ollama
    model_id: zeta:latest
    capabilities: [text_generation, content_creation]
    parameters:
      temperature: 0.4
  alpha:
    provider: openrouter
    model_id: openai/gpt-4o-mini
    capabilities: [text_generation, complex_reasoning, content_creation]
    cost_per_token: 0.00000015
  image:
    provider: replicate
    model_id: black-forest-labs/flux-schnell
    capabilities: [image_generation]
routing_rules:
  simple_text: zeta
  content_creation: zeta
  complex_analysis: alpha
  strategic_planning: alpha
  image_generation: image
fallback_rules:
  local_inference_unavailable: capability_scan
`)

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	got := modelIDs(catalog)
	if got[0] != "zeta" || got[1] != "alpha" || got[2] != "image" {
		t.Fatalf("order = %v, want [zeta alpha image]", got)
	}
	alpha, _ := catalog.Model("alpha")
	if alpha.Family != aimodel.FamilyHostedChat {
		t.Fatalf("alpha family = %s", alpha.Family)
	}
	zeta, _ := catalog.Model("zeta")
	if temp, ok := zeta.Parameters.Float("temperature"); !ok || temp != 0.4 {
		t.Fatalf("zeta temperature = %v", temp)
	}
}

func TestLoadModelDocumentExpandsEnv(t *testing.T) {
	t.Setenv("AI_ROUTER_TEST_MODEL", "llama3.2:3b")
	path := writeTempFile(t, "models.json", `{
		"models": {"local": {"provider": "ollama", "model_id": "${AI_ROUTER_TEST_MODEL}", "capabilities": ["text_generation"]}},
		"routing_rules": {}
	}`)

	doc, err := LoadModelDocument(path)
	if err != nil {
		t.Fatalf("LoadModelDocument: %v", err)
	}
	def, ok := doc.Models.Get("local")
	if !ok || def.ModelID != "llama3.2:3b" {
		t.Fatalf("model_id = %q, want expanded value", def.ModelID)
	}
}

func TestLoadModelDocumentLeavesBareDollarAlone(t *testing.T) {
	t.Setenv("AI_ROUTER_TEST_MODEL", "llama3.2:3b")
	t.Setenv("price", "expanded")
	path := writeTempFile(t, "models.json", `{
		"models": {"local": {"provider": "ollama", "model_id": "${AI_ROUTER_TEST_MODEL}", "name": "Llama $price edition", "capabilities": ["text_generation"]}},
		"routing_rules": {}
	}`)

	doc, err := LoadModelDocument(path)
	if err != nil {
		t.Fatalf("LoadModelDocument: %v", err)
	}
	def, _ := doc.Models.Get("local")
	if def.ModelID != "llama3.2:3b" {
		t.Fatalf("model_id = %q, want expanded value", def.ModelID)
	}
	if def.Name != "Llama $price edition" {
		t.Fatalf("name = %q, want bare $price kept", def.Name)
	}
}

func TestLoadModelDocumentRejectsDuplicateJSONModel(t *testing.T) {
	path := writeTempFile(t, "dup.json", `{
		"models": {
			"m1": {"provider": "ollama", "model_id": "llama3", "capabilities": ["text_generation"]},
			"m1": {"provider": "replicate", "model_id": "owner/flux", "cost_per_token": 5, "capabilities": ["image_generation"]}
		},
		"routing_rules": {}
	}`)

	_, err := LoadModelDocument(path)
	assertConfigLoadError(t, err)
	if !strings.Contains(err.Error(), `duplicate model "m1"`) {
		t.Fatalf("error = %v, want duplicate model m1", err)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
		},
		{
			name: "empty path",
			path: func(t *testing.T) string { return "" },
		},
		{
			name: "malformed json",
			path: func(t *testing.T) string { return writeTempFile(t, "bad.json", `{"models": {`) },
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string { return writeTempFile(t, "bad.yml", "models: [unclosed") },
		},
		{
			name: "duplicate model id in json",
			path: func(t *testing.T) string {
				return writeTempFile(t, "dup.json", `{
					"models": {
						"local": {"provider": "ollama", "model_id": "llama3", "capabilities": ["text_generation"]},
						"local": {"provider": "ollama", "model_id": "mistral", "capabilities": ["text_generation"]}
					},
					"routing_rules": {}
				}`)
			},
		},
		{
			name: "models not a mapping",
			path: func(t *testing.T) string { return writeTempFile(t, "list.yml", "models:\n  - a\n  - b\n") },
		},
		{
			name: "unresolved routing target",
			path: func(t *testing.T) string {
				return writeTempFile(t, "routing.json", `{
					"models": {"local": {"provider": "ollama", "model_id": "llama3", "capabilities": ["text_generation"]}},
					"routing_rules": {
						"simple_text": "local", "content_creation": "local", "complex_analysis": "local",
						"strategic_planning": "local", "image_generation": "dall-e"
					}
				}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(tt.path(t))
			assertConfigLoadError(t, err)
		})
	}
}

func TestModelDocumentSchema(t *testing.T) {
	schema := ModelDocumentSchema()
	if schema.Title == "" {
		t.Fatal("schema title not set")
	}
	data, err := schema.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	for _, field := range []string{"models", "routing_rules", "fallback_rules", "strategic_planning"} {
		if !strings.Contains(string(data), field) {
			t.Fatalf("schema missing %q: %s", field, data)
		}
	}
}
