package airesponses

import (
	"ai-router/internal/domain/aimodel"
)

// ModelResponse is the public view of a registered model.
type ModelResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Provider      string         `json:"provider"`
	ModelID       string         `json:"model_id"`
	Capabilities  []string       `json:"capabilities"`
	ContextWindow int            `json:"context_window,omitempty"`
	CostPerToken  float64        `json:"cost_per_token"`
	UseCases      []string       `json:"use_cases,omitempty"`
	Parameters    map[string]any `json:"parameters,omitempty"`
}

type ModelListResponse struct {
	Object     string          `json:"object"`
	Capability string          `json:"capability,omitempty"`
	Data       []ModelResponse `json:"data"`
}

type CostEstimateResponse struct {
	TaskType string  `json:"taskType"`
	Tokens   int     `json:"tokens"`
	Model    string  `json:"model,omitempty"`
	Cost     float64 `json:"cost"`
}

// InvalidTaskTypeResponse is returned with 400 for unknown categories.
type InvalidTaskTypeResponse struct {
	Error      string   `json:"error"`
	ValidTypes []string `json:"validTypes"`
}

// ErrorResponse is returned with 500 when routing fails.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func NewModelResponse(m *aimodel.Model) ModelResponse {
	capabilities := make([]string, 0, len(m.Capabilities))
	for _, c := range m.Capabilities {
		capabilities = append(capabilities, string(c))
	}
	return ModelResponse{
		ID:            m.ID,
		Name:          m.Name(),
		Provider:      string(m.Family),
		ModelID:       m.BackendModelID,
		Capabilities:  capabilities,
		ContextWindow: m.ContextWindow,
		CostPerToken:  m.CostPerToken,
		UseCases:      m.UseCases,
		Parameters:    m.Parameters,
	}
}

func NewModelListResponse(capability string, models []*aimodel.Model) ModelListResponse {
	data := make([]ModelResponse, 0, len(models))
	for _, m := range models {
		data = append(data, NewModelResponse(m))
	}
	return ModelListResponse{Object: "list", Capability: capability, Data: data}
}
