package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-router/internal/domain/aimodel"
	"ai-router/internal/domain/airouter"
	"ai-router/internal/domain/aiusage"
	"ai-router/internal/utils/platformerrors"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUsageRepositoryWritesRecord(t *testing.T) {
	var buf bytes.Buffer
	repo := NewLogUsageRepository(zerolog.New(&buf))

	model := &aimodel.Model{ID: "claude", DisplayName: "Claude", Family: aimodel.FamilyHostedChat, CostPerToken: 0.000003}
	record := aiusage.NewUsageRecord(airouter.UsageEvent{
		Model:     model,
		Category:  aimodel.TaskComplexAnalysis,
		Usage:     airouter.Usage{PromptTokens: 400, CompletionTokens: 600, TotalTokens: 1000},
		RequestID: "req-7",
	}, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, repo.Create(context.Background(), record))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "claude", line["model"])
	assert.Equal(t, "hosted_chat", line["provider"])
	assert.Equal(t, "complex_analysis", line["task_type"])
	assert.Equal(t, float64(1000), line["tokens_used"])
	assert.Equal(t, "0.003", line["cost_incurred"])
	assert.Equal(t, "req-7", line["request_id"])
	details, ok := line["usage_details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(400), details["prompt_tokens"])
}

func TestLogUsageRepositoryHasNoSummaries(t *testing.T) {
	repo := NewLogUsageRepository(zerolog.Nop())
	_, err := repo.SummarizeByModel(context.Background(), time.Now().Add(-time.Hour), time.Now())
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotImplemented))
}
