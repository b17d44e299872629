package inference

import (
	"context"
	"time"

	"ai-router/internal/domain/aimodel"
	"ai-router/internal/domain/airouter"
	"ai-router/internal/utils/httpclients"
	"ai-router/internal/utils/platformerrors"

	"github.com/sashabaranov/go-openai"
)

// ChatExecutor serves the hosted_chat family through an OpenAI compatible
// gateway such as OpenRouter.
type ChatExecutor struct {
	backend *backend
	apiKey  string
}

func NewChatExecutor(baseURL, apiKey, referer string, timeout time.Duration) *ChatExecutor {
	b := newBackend(httpclients.NewClient("openrouter", timeout), "openrouter", baseURL)
	b.headers["HTTP-Referer"] = referer
	b.headers["X-Title"] = "ai-router"
	return &ChatExecutor{backend: b, apiKey: apiKey}
}

func (e *ChatExecutor) Family() aimodel.ProviderFamily {
	return aimodel.FamilyHostedChat
}

func (e *ChatExecutor) Execute(ctx context.Context, model *aimodel.Model, content string, params aimodel.Params) (*airouter.CallResult, error) {
	request := chatRequest(model, content, params)

	var body openai.ChatCompletionResponse
	resp, err := e.backend.prepareRequest(ctx, e.apiKey).
		SetBody(request).
		SetResult(&body).
		Post(e.backend.endpoint("/chat/completions"))
	if err != nil {
		return nil, airouter.NewProviderExecutionError(model, e.backend.transportError(ctx, err, "chat completion request failed"))
	}
	if resp.IsError() {
		return nil, airouter.NewProviderExecutionError(model, e.backend.errorFromResponse(ctx, resp, "chat completion request failed"))
	}

	if len(body.Choices) == 0 {
		return nil, airouter.NewProviderExecutionError(model, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "chat completion returned no choices", nil, ""))
	}
	text := body.Choices[0].Message.Content
	usage := airouter.Usage{
		PromptTokens:     body.Usage.PromptTokens,
		CompletionTokens: body.Usage.CompletionTokens,
		TotalTokens:      body.Usage.TotalTokens,
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	return &airouter.CallResult{Content: text, Usage: usage}, nil
}

func chatRequest(model *aimodel.Model, content string, params aimodel.Params) openai.ChatCompletionRequest {
	request := openai.ChatCompletionRequest{
		Model: model.BackendModelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
	}
	if maxTokens, ok := params.Int("max_tokens", "maxTokens"); ok && maxTokens > 0 {
		request.MaxTokens = maxTokens
	}
	if temperature, ok := params.Float("temperature"); ok {
		request.Temperature = float32(temperature)
	}
	if topP, ok := params.Float("top_p"); ok {
		request.TopP = float32(topP)
	}
	return request
}
