package inference

import (
	"context"
	"time"

	"ai-router/internal/domain/aimodel"
	"ai-router/internal/domain/airouter"
	"ai-router/internal/utils/httpclients"
)

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

// ollamaPassthroughOptions are copied verbatim into the options block.
var ollamaPassthroughOptions = []string{"top_p", "top_k", "num_ctx", "seed", "stop", "repeat_penalty"}

// OllamaExecutor serves the local_inference family through /api/generate.
type OllamaExecutor struct {
	backend *backend
}

func NewOllamaExecutor(baseURL string, timeout time.Duration) *OllamaExecutor {
	return &OllamaExecutor{backend: newBackend(httpclients.NewClient("ollama", timeout), "ollama", baseURL)}
}

func (e *OllamaExecutor) Family() aimodel.ProviderFamily {
	return aimodel.FamilyLocalInference
}

func (e *OllamaExecutor) Execute(ctx context.Context, model *aimodel.Model, content string, params aimodel.Params) (*airouter.CallResult, error) {
	request := ollamaGenerateRequest{
		Model:   model.BackendModelID,
		Prompt:  content,
		Stream:  false,
		Options: ollamaOptions(params),
	}

	var body ollamaGenerateResponse
	resp, err := e.backend.prepareRequest(ctx, "").
		SetBody(request).
		SetResult(&body).
		Post(e.backend.endpoint("/api/generate"))
	if err != nil {
		return nil, airouter.NewProviderExecutionError(model, e.backend.transportError(ctx, err, "generate request failed"))
	}
	if resp.IsError() {
		return nil, airouter.NewProviderExecutionError(model, e.backend.errorFromResponse(ctx, resp, "generate request failed"))
	}

	return &airouter.CallResult{
		Content: body.Response,
		Usage: airouter.Usage{
			PromptTokens:     body.PromptEvalCount,
			CompletionTokens: body.EvalCount,
			TotalTokens:      body.PromptEvalCount + body.EvalCount,
		},
	}, nil
}

func ollamaOptions(params aimodel.Params) map[string]any {
	options := map[string]any{}
	if temperature, ok := params.Float("temperature"); ok {
		options["temperature"] = temperature
	}
	if maxTokens, ok := params.Int("max_tokens", "maxTokens", "num_predict"); ok && maxTokens > 0 {
		options["num_predict"] = maxTokens
	}
	for _, key := range ollamaPassthroughOptions {
		if value, ok := params[key]; ok {
			options[key] = value
		}
	}
	if len(options) == 0 {
		return nil
	}
	return options
}
