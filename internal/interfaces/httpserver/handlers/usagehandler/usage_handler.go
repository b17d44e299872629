package usagehandler

import (
	"fmt"
	"net/http"
	"time"

	"ai-router/internal/domain/aiusage"
	"ai-router/internal/infrastructure/logger"
	"ai-router/internal/utils/platformerrors"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// UsageHandler serves aggregated usage from the usage log.
type UsageHandler struct {
	usageService *aiusage.Service
}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler(usageService *aiusage.Service) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
	}
}

// GetUsage godoc
// @Summary Get routed call usage
// @Description Returns token and cost totals grouped by model and provider within a date range
// @Tags Usage
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD), defaults to 30 days ago"
// @Param end_date query string false "End date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} aiusage.UsageResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Failure 501 {object} map[string]string
// @Router /v1/ai/usage [get]
func (h *UsageHandler) GetUsage(c *gin.Context) {
	startDate, endDate, err := parseDateRange(c, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	usage, err := h.usageService.GetUsage(ctx, startDate, endDate)
	if err != nil {
		perr := platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get usage")
		platformerrors.LogError(logger.GetLogger(), perr)
		c.JSON(platformerrors.ErrorTypeToHTTPStatus(perr.Type), gin.H{"error": perr.Message})
		return
	}

	c.JSON(http.StatusOK, usage)
}

// parseDateRange reads start_date and end_date, defaulting to the last 30 days.
func parseDateRange(c *gin.Context, now time.Time) (time.Time, time.Time, error) {
	endDate := now
	startDate := now.AddDate(0, 0, -30)

	if startStr := c.Query("start_date"); startStr != "" {
		parsed, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q, expected YYYY-MM-DD", startStr)
		}
		startDate = parsed
	}

	if endStr := c.Query("end_date"); endStr != "" {
		parsed, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q, expected YYYY-MM-DD", endStr)
		}
		endDate = parsed.Add(24*time.Hour - time.Second) // End of day
	}

	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date is before start_date")
	}
	return startDate, endDate, nil
}
