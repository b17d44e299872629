package aiusage

import (
	"encoding/json"
	"time"

	"ai-router/internal/domain/airouter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// UsageRecord is one completed routed call. Records are append-only.
type UsageRecord struct {
	ID           string          `gorm:"column:id;primaryKey;type:uuid"`
	ModelName    string          `gorm:"column:model_name;not null;index"`
	ModelID      string          `gorm:"column:model_id;not null"`
	Provider     string          `gorm:"column:provider;not null;index"`
	TaskType     string          `gorm:"column:task_type;not null;index"`
	TokensUsed   int             `gorm:"column:tokens_used;not null;default:0"`
	CostIncurred decimal.Decimal `gorm:"column:cost_incurred;type:decimal(18,8)"`
	UsageDetails datatypes.JSON  `gorm:"column:usage_details;type:jsonb"`
	RequestID    *string         `gorm:"column:request_id"`
	Timestamp    time.Time       `gorm:"column:timestamp;not null;index"`
}

// TableName returns the table name for UsageRecord
func (UsageRecord) TableName() string {
	return "ai_router.ai_usage_logs"
}

// NewUsageRecord builds the record for a completed call. Cost is
// total tokens × the executing model's cost per token.
func NewUsageRecord(event airouter.UsageEvent, now time.Time) *UsageRecord {
	details, err := json.Marshal(event.Usage)
	if err != nil {
		details = []byte("{}")
	}

	record := &UsageRecord{
		ID:           uuid.NewString(),
		ModelName:    event.Model.Name(),
		ModelID:      event.Model.ID,
		Provider:     string(event.Model.Family),
		TaskType:     string(event.Category),
		TokensUsed:   event.Usage.TotalTokens,
		CostIncurred: event.Model.Cost(event.Usage.TotalTokens),
		UsageDetails: datatypes.JSON(details),
		Timestamp:    now.UTC(),
	}
	if event.RequestID != "" {
		requestID := event.RequestID
		record.RequestID = &requestID
	}
	return record
}

// UsageSummary is usage aggregated per model and provider.
type UsageSummary struct {
	Model        string          `json:"model,omitempty"`
	Provider     string          `json:"provider,omitempty"`
	TotalTokens  int64           `json:"total_tokens"`
	RequestCount int64           `json:"request_count"`
	CostIncurred decimal.Decimal `json:"cost_incurred"`
}

// UsageResponse represents the API response for usage queries
type UsageResponse struct {
	Period     Period         `json:"period"`
	TotalUsage UsageSummary   `json:"total_usage"`
	ByModel    []UsageSummary `json:"by_model"`
	ByProvider []UsageSummary `json:"by_provider"`
}

// Period represents a date range for usage queries
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}
