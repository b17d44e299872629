package persistence

import (
	"context"
	"time"

	"ai-router/internal/domain/aiusage"
	"ai-router/internal/utils/platformerrors"

	"github.com/rs/zerolog"
)

// LogUsageRepository writes usage records to the structured log. It is the
// sink used when no database is configured.
type LogUsageRepository struct {
	log zerolog.Logger
}

func NewLogUsageRepository(log zerolog.Logger) *LogUsageRepository {
	return &LogUsageRepository{log: log.With().Str("component", "usage_log").Logger()}
}

func (r *LogUsageRepository) Create(_ context.Context, record *aiusage.UsageRecord) error {
	event := r.log.Info().
		Str("usage_id", record.ID).
		Str("model", record.ModelID).
		Str("provider", record.Provider).
		Str("task_type", record.TaskType).
		Int("tokens_used", record.TokensUsed).
		Str("cost_incurred", record.CostIncurred.String()).
		RawJSON("usage_details", record.UsageDetails).
		Time("timestamp", record.Timestamp)
	if record.RequestID != nil {
		event = event.Str("request_id", *record.RequestID)
	}
	event.Msg("ai usage")
	return nil
}

func (r *LogUsageRepository) SummarizeByModel(ctx context.Context, _, _ time.Time) ([]aiusage.UsageSummary, error) {
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotImplemented,
		"usage summaries need DATABASE_URL", nil, "")
}
