package airouter

import (
	"errors"
	"fmt"

	"ai-router/internal/domain/aimodel"
)

var (
	ErrModelNotFound       = errors.New("model not found")
	ErrNoFallbackAvailable = errors.New("no fallback available")
	ErrProviderExecution   = errors.New("provider execution failed")
	ErrUnsupportedProvider = errors.New("unsupported provider family")
)

// ProviderExecutionError wraps a backend fault and keeps its detail.
type ProviderExecutionError struct {
	Family  aimodel.ProviderFamily
	ModelID string
	Err     error
}

func (e *ProviderExecutionError) Error() string {
	return fmt.Sprintf("%s model %q: %v", e.Family, e.ModelID, e.Err)
}

func (e *ProviderExecutionError) Unwrap() error {
	return e.Err
}

func (e *ProviderExecutionError) Is(target error) bool {
	return target == ErrProviderExecution
}

// NewProviderExecutionError is used by adapters to report a failed call.
func NewProviderExecutionError(model *aimodel.Model, err error) *ProviderExecutionError {
	return &ProviderExecutionError{Family: model.Family, ModelID: model.ID, Err: err}
}
