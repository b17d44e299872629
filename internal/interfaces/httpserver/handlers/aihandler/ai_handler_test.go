package aihandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-router/internal/domain/aimodel"
	"ai-router/internal/domain/airouter"
	"ai-router/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allAvailable struct{}

func (allAvailable) IsAvailable(context.Context, *aimodel.Model) bool { return true }

type fakeExecutor struct {
	family     aimodel.ProviderFamily
	err        error
	lastParams aimodel.Params
}

func (f *fakeExecutor) Family() aimodel.ProviderFamily { return f.family }

func (f *fakeExecutor) Execute(_ context.Context, model *aimodel.Model, content string, params aimodel.Params) (*airouter.CallResult, error) {
	f.lastParams = params
	if f.err != nil {
		return nil, airouter.NewProviderExecutionError(model, f.err)
	}
	return &airouter.CallResult{
		Content: "done: " + content,
		Usage:   airouter.Usage{PromptTokens: 3, CompletionTokens: 4, TotalTokens: 7},
	}, nil
}

type fixture struct {
	engine *gin.Engine
	local  *fakeExecutor
	chat   *fakeExecutor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	doc := aimodel.NewDocument()
	doc.Models.Set("local", aimodel.ModelDefinition{
		Name:         "Local Llama",
		Provider:     "ollama",
		ModelID:      "llama3.1:8b",
		Capabilities: []string{"text_generation", "content_creation"},
	})
	doc.Models.Set("sonnet", aimodel.ModelDefinition{
		Provider:     "openrouter",
		ModelID:      "anthropic/claude-3.5-sonnet",
		Capabilities: []string{"text_generation", "content_creation", "complex_reasoning"},
		CostPerToken: 0.000003,
	})
	doc.Models.Set("flux", aimodel.ModelDefinition{
		Provider:     "replicate",
		ModelID:      "black-forest-labs/flux-schnell",
		Capabilities: []string{"image_generation"},
		CostPerToken: 0.003,
	})
	doc.RoutingRules = map[string]string{
		"simple_text":        "local",
		"content_creation":   "sonnet",
		"complex_analysis":   "sonnet",
		"strategic_planning": "sonnet",
		"image_generation":   "flux",
	}
	catalog, err := aimodel.NewCatalog(doc)
	require.NoError(t, err)

	f := &fixture{
		local: &fakeExecutor{family: aimodel.FamilyLocalInference},
		chat:  &fakeExecutor{family: aimodel.FamilyHostedChat},
	}
	router, err := airouter.NewRouter(catalog, allAvailable{}, airouter.Executors{
		f.local, f.chat, &fakeExecutor{family: aimodel.FamilyHostedImage},
	}, nil, nil)
	require.NoError(t, err)

	handler := NewAIHandler(router, telemetry.NewRedactor(telemetry.PIILevelHashed, "test"))
	f.engine = gin.New()
	f.engine.POST("/v1/ai/route", handler.RouteTask)
	f.engine.GET("/v1/ai/cost-estimate", handler.EstimateCost)
	f.engine.GET("/v1/ai/models", handler.ListModels)
	f.engine.GET("/v1/ai/config/schema", handler.ConfigSchema)
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRouteTaskSuccess(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/v1/ai/route",
		`{"taskType":"simple_text","content":"hello","options":{"maxTokens":64,"temperature":0.2,"parameters":{"top_k":20}}}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "done: hello", body["content"])
	assert.Equal(t, "local", body["model_id"])
	assert.Equal(t, "Local Llama", body["model"])
	assert.Equal(t, "local_inference", body["provider"])

	assert.Equal(t, 64, f.local.lastParams["max_tokens"])
	assert.Equal(t, 0.2, f.local.lastParams["temperature"])
	assert.EqualValues(t, 20, f.local.lastParams["top_k"])
}

func TestRouteTaskBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "malformed json", body: `{"taskType":`, wantErr: "Invalid request body"},
		{name: "missing content", body: `{"taskType":"simple_text"}`, wantErr: "Missing required fields: taskType and content"},
		{name: "missing task type", body: `{"content":"hi"}`, wantErr: "Missing required fields: taskType and content"},
		{name: "empty content", body: `{"taskType":"simple_text","content":""}`, wantErr: "Missing required fields: taskType and content"},
		{name: "temperature out of range", body: `{"taskType":"simple_text","content":"hi","options":{"temperature":3}}`, wantErr: "Invalid options"},
		{name: "unknown task type", body: `{"taskType":"poetry","content":"hi"}`, wantErr: "Invalid taskType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			w := f.do(http.MethodPost, "/v1/ai/route", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, tt.wantErr, decode(t, w)["error"])
			assert.Nil(t, f.local.lastParams)
		})
	}
}

func TestRouteTaskUnknownTypeListsValidTypes(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/v1/ai/route", `{"taskType":"poetry","content":"hi"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.ElementsMatch(t, []any{
		"simple_text", "content_creation", "complex_analysis", "strategic_planning", "image_generation",
	}, decode(t, w)["validTypes"])
}

func TestRouteTaskProviderFailure(t *testing.T) {
	f := newFixture(t)
	f.chat.err = errors.New("upstream said no")

	w := f.do(http.MethodPost, "/v1/ai/route", `{"taskType":"complex_analysis","content":"why"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Contains(t, body["message"], "upstream said no")
}

func TestEstimateCost(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/v1/ai/cost-estimate?taskType=complex_analysis&tokens=1000", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.InDelta(t, 0.003, body["cost"], 1e-12)
	assert.Equal(t, "sonnet", body["model"])

	w = f.do(http.MethodGet, "/v1/ai/cost-estimate?taskType=simple_text&tokens=1000", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["cost"])
}

func TestEstimateCostRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	for _, target := range []string{
		"/v1/ai/cost-estimate?taskType=poetry&tokens=10",
		"/v1/ai/cost-estimate?taskType=simple_text&tokens=abc",
		"/v1/ai/cost-estimate?taskType=simple_text&tokens=-1",
		"/v1/ai/cost-estimate?taskType=simple_text",
	} {
		w := f.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestListModels(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/v1/ai/models?capability=content_creation", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, "local", data[0].(map[string]any)["id"])
	assert.Equal(t, "sonnet", data[1].(map[string]any)["id"])

	w = f.do(http.MethodGet, "/v1/ai/models", "")
	assert.Len(t, decode(t, w)["data"], 3)

	w = f.do(http.MethodGet, "/v1/ai/models?capability=video", "")
	assert.Empty(t, decode(t, w)["data"])
}

func TestConfigSchema(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/v1/ai/config/schema", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "routing_rules")
}
