package observability

import (
	"context"
	"errors"
	"testing"

	"ai-router/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporterEndpoint(t *testing.T) {
	tests := []struct {
		raw      string
		endpoint string
		insecure bool
	}{
		{"otel-collector:4318", "otel-collector:4318", true},
		{"http://otel-collector:4318/", "otel-collector:4318", true},
		{"https://otlp.example.com", "otlp.example.com", false},
	}
	for _, tt := range tests {
		endpoint, insecure := exporterEndpoint(tt.raw)
		assert.Equal(t, tt.endpoint, endpoint, tt.raw)
		assert.Equal(t, tt.insecure, insecure, tt.raw)
	}
}

func TestParseHeaders(t *testing.T) {
	headers := parseHeaders("Authorization=Basic abc==, x-team = routing ,broken, empty=")
	assert.Equal(t, map[string]string{"Authorization": "Basic abc==", "x-team": "routing"}, headers)
}

func TestSetupWithoutExporterRecordsSpans(t *testing.T) {
	cfg := &config.Config{ServiceName: "ai-router-test", ServiceNamespace: "ai", Environment: "test"}
	shutdown, err := Setup(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	ctx, span := StartSpan(context.Background(), "route")
	RecordError(ctx, errors.New("backend down"))
	assert.NotEmpty(t, GetTraceID(ctx))
	span.End()
}

func TestUsageAttrsSkipZeroCounters(t *testing.T) {
	attrs := WithUsageAttrs(10, 0, 10, 0)
	require.Len(t, attrs, 2)
	assert.Equal(t, AttrTokensPrompt, string(attrs[0].Key))
	assert.Equal(t, AttrTokensTotal, string(attrs[1].Key))

	assert.Empty(t, WithUsageAttrs(0, 0, 0, 0))
	assert.Len(t, WithModelAttrs("flux", "hosted_image", ""), 2)
}
