package inference

import (
	"context"
	"fmt"
	"strings"

	"ai-router/internal/utils/platformerrors"

	"resty.dev/v3"
)

// backend is the resty plumbing shared by the provider adapters.
type backend struct {
	client  *resty.Client
	baseURL string
	name    string
	headers map[string]string
}

func newBackend(client *resty.Client, name, baseURL string) *backend {
	return &backend{
		client:  client,
		baseURL: normalizeBaseURL(baseURL),
		name:    name,
		headers: map[string]string{},
	}
}

func (b *backend) prepareRequest(ctx context.Context, bearer string) *resty.Request {
	req := b.client.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(bearer) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", bearer))
	}
	for key, value := range b.headers {
		if value != "" {
			req.SetHeader(key, value)
		}
	}
	return req
}

func (b *backend) endpoint(path string) string {
	if path == "" {
		return b.baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if b.baseURL == "" {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return b.baseURL + path
	}
	return b.baseURL + "/" + path
}

func (b *backend) errorFromResponse(ctx context.Context, resp *resty.Response, message string) error {
	if resp == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "")
	}
	trimmed := strings.TrimSpace(resp.String())
	if trimmed != "" {
		message = fmt.Sprintf("%s: %s", message, truncate(trimmed, 512))
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "", map[string]any{
		"client": b.name,
	}).WithStatus(resp.StatusCode())
}

func (b *backend) transportError(ctx context.Context, err error, message string) error {
	return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, fmt.Sprintf("%s: %s", b.name, message))
}

func normalizeBaseURL(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
