package persistence

import (
	"context"
	"time"

	"ai-router/internal/domain/aiusage"
	"ai-router/internal/utils/platformerrors"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// UsageRepository implements aiusage.Repository using GORM
type UsageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// Create stores a new usage record
func (r *UsageRepository) Create(ctx context.Context, record *aiusage.UsageRecord) error {
	if err := r.db.WithContext(ctx).Clauses(dbresolver.Write).Create(record).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "insert usage record", err, "")
	}
	return nil
}

// SummarizeByModel aggregates usage per model and provider within a date
// range. Reads go to a replica when one is registered.
func (r *UsageRepository) SummarizeByModel(ctx context.Context, startDate, endDate time.Time) ([]aiusage.UsageSummary, error) {
	var summaries []aiusage.UsageSummary

	err := r.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Model(&aiusage.UsageRecord{}).
		Select(`
			model_name as model,
			provider,
			COALESCE(SUM(tokens_used), 0) as total_tokens,
			COALESCE(SUM(cost_incurred), 0) as cost_incurred,
			COUNT(*) as request_count
		`).
		Where("timestamp >= ? AND timestamp <= ?", startDate, endDate).
		Group("model_name, provider").
		Scan(&summaries).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "summarize usage", err, "")
	}
	return summaries, nil
}
