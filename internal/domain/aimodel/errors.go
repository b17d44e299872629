package aimodel

import (
	"errors"
	"fmt"
)

// ErrUnknownTaskType is matched by errors.Is for any category outside the enum.
var ErrUnknownTaskType = errors.New("unknown task type")

// UnknownTaskTypeError carries the rejected category.
type UnknownTaskTypeError struct {
	TaskType string
}

func (e *UnknownTaskTypeError) Error() string {
	return fmt.Sprintf("unknown task type: %q", e.TaskType)
}

func (e *UnknownTaskTypeError) Is(target error) bool {
	return target == ErrUnknownTaskType
}

// ConfigLoadError reports a model document that cannot back a catalog.
// It is fatal at startup.
type ConfigLoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *ConfigLoadError) Error() string {
	msg := "load model configuration"
	if e.Source != "" {
		msg += " " + e.Source
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

func configErrorf(format string, args ...any) *ConfigLoadError {
	return &ConfigLoadError{Reason: fmt.Sprintf(format, args...)}
}
