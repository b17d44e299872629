package aiusage

import (
	"context"
	"time"
)

// Repository defines the interface for usage record storage
type Repository interface {
	// Create stores a new usage record
	Create(ctx context.Context, record *UsageRecord) error

	// SummarizeByModel aggregates usage per model and provider within a date range
	SummarizeByModel(ctx context.Context, startDate, endDate time.Time) ([]UsageSummary, error)
}
