package platformerrors

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"ai-router/internal/utils/requestid"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorCarriesRequestID(t *testing.T) {
	ctx := requestid.With(context.Background(), "req-42")
	err := NewError(ctx, LayerDomain, ErrorTypeExternal, "ollama call failed", errors.New("boom"), "")

	assert.Equal(t, "req-42", err.RequestID)
	assert.NotEmpty(t, err.UUID)
	assert.Contains(t, err.Error(), "ollama call failed: boom")
}

func TestAsErrorKeepsType(t *testing.T) {
	inner := NewError(context.Background(), LayerInfrastructure, ErrorTypeExternal, "upstream 503", nil, "fixed-uuid")
	wrapped := AsError(context.Background(), LayerDomain, inner, "route task")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeExternal, wrapped.Type)
	assert.Equal(t, "fixed-uuid", wrapped.UUID)
	assert.True(t, IsErrorType(wrapped, ErrorTypeExternal))
	assert.Nil(t, AsError(context.Background(), LayerDomain, nil, "noop"))
}

func TestAsErrorClassifiesDeadline(t *testing.T) {
	err := AsError(context.Background(), LayerDomain, context.DeadlineExceeded, "probe")
	assert.Equal(t, ErrorTypeTimeout, err.Type)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := map[ErrorType]int{
		ErrorTypeValidation:  http.StatusBadRequest,
		ErrorTypeNotFound:    http.StatusNotFound,
		ErrorTypeUnavailable: http.StatusServiceUnavailable,
		ErrorTypeExternal:    http.StatusBadGateway,
		ErrorTypeTimeout:     http.StatusGatewayTimeout,
		ErrorTypeInternal:    http.StatusInternalServerError,
		"SOMETHING_ELSE":     http.StatusInternalServerError,
	}
	for errorType, want := range tests {
		assert.Equal(t, want, ErrorTypeToHTTPStatus(errorType), errorType)
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	err := NewErrorWithContext(requestid.With(context.Background(), "req-1"), LayerHandler, ErrorTypeValidation, "bad input", nil, "u-1", map[string]any{"task_type": "poetry"})
	LogError(log, err.WithStatus(422))

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"task_type":"poetry"`)
	assert.Contains(t, out, `"upstream_status":422`)
	assert.Contains(t, out, `"message":"bad input"`)
}
