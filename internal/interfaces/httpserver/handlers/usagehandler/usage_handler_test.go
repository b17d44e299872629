package usagehandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-router/internal/domain/aiusage"
	"ai-router/internal/utils/platformerrors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	summaries  []aiusage.UsageSummary
	err        error
	start, end time.Time
}

func (f *fakeRepository) Create(context.Context, *aiusage.UsageRecord) error { return nil }

func (f *fakeRepository) SummarizeByModel(_ context.Context, start, end time.Time) ([]aiusage.UsageSummary, error) {
	f.start, f.end = start, end
	return f.summaries, f.err
}

func serveUsage(repo *fakeRepository, query string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/v1/ai/usage", NewUsageHandler(aiusage.NewService(repo)).GetUsage)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ai/usage"+query, nil))
	return w
}

func TestGetUsageAggregates(t *testing.T) {
	repo := &fakeRepository{summaries: []aiusage.UsageSummary{
		{Model: "Claude 3.5 Sonnet", Provider: "hosted_chat", TotalTokens: 1000, RequestCount: 2, CostIncurred: decimal.RequireFromString("0.003")},
		{Model: "Llama 3 8B", Provider: "local_inference", TotalTokens: 500, RequestCount: 1, CostIncurred: decimal.Zero},
	}}

	w := serveUsage(repo, "?start_date=2026-01-01&end_date=2026-01-31")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body aiusage.UsageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 1500, body.TotalUsage.TotalTokens)
	assert.EqualValues(t, 3, body.TotalUsage.RequestCount)
	assert.Len(t, body.ByModel, 2)
	assert.Len(t, body.ByProvider, 2)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), repo.start)
	assert.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC), repo.end)
}

func TestGetUsageRejectsBadDates(t *testing.T) {
	for _, query := range []string{
		"?start_date=01/02/2026",
		"?end_date=tomorrow",
		"?start_date=2026-02-01&end_date=2026-01-01",
	} {
		w := serveUsage(&fakeRepository{}, query)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestGetUsageMapsRepositoryErrors(t *testing.T) {
	notImplemented := platformerrors.NewError(context.Background(), platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotImplemented, "usage summaries need DATABASE_URL", nil, "")

	w := serveUsage(&fakeRepository{err: notImplemented}, "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w = serveUsage(&fakeRepository{err: errors.New("connection reset")}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
