package middlewares

import (
	"ai-router/internal/utils/requestid"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestID injects an X-Request-Id header when missing and propagates it
// through both the gin context and the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestid.Header)
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(requestid.Header, id)
		}
		c.Writer.Header().Set(requestid.Header, id)
		c.Set(requestIDKey, id)
		c.Request = c.Request.WithContext(requestid.With(c.Request.Context(), id))
		c.Next()
	}
}

// RequestIDFromContext returns the request id stored in the gin context.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
