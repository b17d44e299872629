package aimodel

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// ProviderFamily is the class of backend serving a model.
type ProviderFamily string

const (
	FamilyLocalInference ProviderFamily = "local_inference"
	FamilyHostedChat     ProviderFamily = "hosted_chat"
	FamilyHostedImage    ProviderFamily = "hosted_image"
)

// Families lists every supported provider family.
var Families = []ProviderFamily{FamilyLocalInference, FamilyHostedChat, FamilyHostedImage}

// providerAliases maps the vendor names used in model documents to families.
var providerAliases = map[string]ProviderFamily{
	"local_inference": FamilyLocalInference,
	"local-inference": FamilyLocalInference,
	"ollama":          FamilyLocalInference,
	"hosted_chat":     FamilyHostedChat,
	"hosted-chat":     FamilyHostedChat,
	"openrouter":      FamilyHostedChat,
	"anthropic":       FamilyHostedChat,
	"openai":          FamilyHostedChat,
	"hosted_image":    FamilyHostedImage,
	"hosted-image":    FamilyHostedImage,
	"replicate":       FamilyHostedImage,
}

// ParseProviderFamily resolves a provider name or alias to its family.
func ParseProviderFamily(raw string) (ProviderFamily, bool) {
	family, ok := providerAliases[strings.ToLower(strings.TrimSpace(raw))]
	return family, ok
}

// TaskCategory is a request intent used to select a default model.
type TaskCategory string

const (
	TaskSimpleText        TaskCategory = "simple_text"
	TaskContentCreation   TaskCategory = "content_creation"
	TaskComplexAnalysis   TaskCategory = "complex_analysis"
	TaskStrategicPlanning TaskCategory = "strategic_planning"
	TaskImageGeneration   TaskCategory = "image_generation"
)

// TaskCategories lists the categories in their canonical order.
var TaskCategories = []TaskCategory{
	TaskSimpleText,
	TaskContentCreation,
	TaskComplexAnalysis,
	TaskStrategicPlanning,
	TaskImageGeneration,
}

// ParseTaskCategory returns ErrUnknownTaskType for anything outside the enum.
func ParseTaskCategory(raw string) (TaskCategory, error) {
	category := TaskCategory(raw)
	if !slices.Contains(TaskCategories, category) {
		return "", &UnknownTaskTypeError{TaskType: raw}
	}
	return category, nil
}

// ValidTaskTypes returns the category names as plain strings.
func ValidTaskTypes() []string {
	out := make([]string, len(TaskCategories))
	for i, c := range TaskCategories {
		out[i] = string(c)
	}
	return out
}

// Capability tags what kind of task a model can serve.
type Capability string

const (
	CapabilityTextGeneration   Capability = "text_generation"
	CapabilityContentCreation  Capability = "content_creation"
	CapabilityComplexReasoning Capability = "complex_reasoning"
	CapabilityImageGeneration  Capability = "image_generation"
)

var requiredCapabilities = map[TaskCategory]Capability{
	TaskSimpleText:        CapabilityTextGeneration,
	TaskContentCreation:   CapabilityContentCreation,
	TaskComplexAnalysis:   CapabilityComplexReasoning,
	TaskStrategicPlanning: CapabilityComplexReasoning,
	TaskImageGeneration:   CapabilityImageGeneration,
}

// RequiredCapability is the capability a capability-scan fallback must find for a category.
func RequiredCapability(category TaskCategory) (Capability, bool) {
	capability, ok := requiredCapabilities[category]
	return capability, ok
}

// Model is an immutable backend descriptor.
type Model struct {
	ID             string         `json:"id"`
	DisplayName    string         `json:"name"`
	Family         ProviderFamily `json:"provider"`
	BackendModelID string         `json:"model_id"`
	Capabilities   []Capability   `json:"capabilities"`
	ContextWindow  int            `json:"context_window"`
	CostPerToken   float64        `json:"cost_per_token"`
	UseCases       []string       `json:"use_cases,omitempty"`
	Parameters     Params         `json:"parameters,omitempty"`
	Priority       int            `json:"priority"`
}

// HasCapability reports whether the model carries the tag.
func (m *Model) HasCapability(capability Capability) bool {
	return slices.Contains(m.Capabilities, capability)
}

// Name returns the display name, falling back to the identifier.
func (m *Model) Name() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.ID
}

// Cost is tokens × CostPerToken. Non-positive token counts cost nothing.
func (m *Model) Cost(tokens int) decimal.Decimal {
	if m == nil || tokens <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(m.CostPerToken).Mul(decimal.NewFromInt(int64(tokens)))
}
