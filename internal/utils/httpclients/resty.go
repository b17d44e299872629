package httpclients

import (
	"context"
	"time"

	"ai-router/internal/infrastructure/logger"
	"ai-router/internal/utils/requestid"

	"resty.dev/v3"
)

type httpClientStartsAt struct{}

// NewClient returns a resty client that logs every exchange at debug level.
// Request bodies are not logged since they carry prompts.
func NewClient(clientName string, timeout time.Duration) *resty.Client {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	client.SetHeader("User-Agent", "ai-router/"+clientName)
	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		ctx := context.WithValue(r.Context(), httpClientStartsAt{}, time.Now())
		r.SetContext(ctx)
		return nil
	})
	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		log := logger.GetLogger()
		ctx := r.Request.Context()
		startTime, _ := ctx.Value(httpClientStartsAt{}).(time.Time)

		event := log.Debug().
			Str("request_id", requestid.From(ctx)).
			Str("client", clientName).
			Int("status", r.StatusCode()).
			Dur("latency", time.Since(startTime))
		if raw := r.Request.RawRequest; raw != nil {
			event = event.Str("method", raw.Method).Str("path", raw.URL.Path)
		}
		event.Msg("HTTP client request")
		return nil
	})
	return client
}
