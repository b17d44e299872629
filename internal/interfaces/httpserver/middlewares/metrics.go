package middlewares

import (
	"strconv"
	"time"

	"ai-router/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
)

// TaskTypeKey is set by the route handler so that request logs and metrics
// carry the task category.
const TaskTypeKey = "task_type"

// MetricsMiddleware records HTTP request metrics
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			c.GetString(TaskTypeKey),
			time.Since(start).Seconds(),
		)
		metrics.RecordUserAgent(c.Request.UserAgent())
	}
}
