package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-router/internal/domain/aimodel"
	"ai-router/internal/domain/airouter"
	"ai-router/internal/utils/httpclients"
	"ai-router/internal/utils/platformerrors"

	"github.com/tidwall/gjson"
)

const (
	predictionSucceeded = "succeeded"
	predictionFailed    = "failed"
	predictionCanceled  = "canceled"
)

// replicateSkippedParams are router level options with no meaning for an
// image prediction.
var replicateSkippedParams = map[string]bool{
	"context":     true,
	"max_tokens":  true,
	"maxTokens":   true,
	"temperature": true,
}

// ReplicateExecutor serves the hosted_image family through the predictions API.
// The timeout bounds the whole call, creation and polling together.
type ReplicateExecutor struct {
	backend      *backend
	apiToken     string
	timeout      time.Duration
	pollInterval time.Duration
}

func NewReplicateExecutor(baseURL, apiToken string, timeout, pollInterval time.Duration) *ReplicateExecutor {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	b := newBackend(httpclients.NewClient("replicate", timeout), "replicate", baseURL)
	return &ReplicateExecutor{backend: b, apiToken: apiToken, timeout: timeout, pollInterval: pollInterval}
}

func (e *ReplicateExecutor) Family() aimodel.ProviderFamily {
	return aimodel.FamilyHostedImage
}

func (e *ReplicateExecutor) Execute(ctx context.Context, model *aimodel.Model, content string, params aimodel.Params) (*airouter.CallResult, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	path, body := predictionRequest(model.BackendModelID, content, params)

	resp, err := e.backend.prepareRequest(ctx, e.apiToken).
		SetHeader("Prefer", "wait").
		SetBody(body).
		Post(e.backend.endpoint(path))
	if err != nil {
		return nil, airouter.NewProviderExecutionError(model, e.backend.transportError(ctx, err, "create prediction failed"))
	}
	if resp.IsError() {
		return nil, airouter.NewProviderExecutionError(model, e.backend.errorFromResponse(ctx, resp, "create prediction failed"))
	}

	prediction, err := e.awaitPrediction(ctx, resp.String())
	if err != nil {
		return nil, airouter.NewProviderExecutionError(model, err)
	}

	artifacts := predictionOutput(prediction)
	if len(artifacts) == 0 {
		return nil, airouter.NewProviderExecutionError(model, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "prediction succeeded without output", nil, ""))
	}
	return &airouter.CallResult{
		Content:   artifacts[0],
		Artifacts: artifacts,
		Usage:     airouter.Usage{ImagesGenerated: len(artifacts)},
	}, nil
}

// awaitPrediction polls the prediction until it reaches a terminal state.
// With Prefer: wait most predictions are already done on the first response.
func (e *ReplicateExecutor) awaitPrediction(ctx context.Context, prediction string) (string, error) {
	for {
		status := gjson.Get(prediction, "status").String()
		switch status {
		case predictionSucceeded:
			return prediction, nil
		case predictionFailed, predictionCanceled:
			detail := gjson.Get(prediction, "error").String()
			if detail == "" {
				detail = status
			}
			return "", platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
				fmt.Sprintf("prediction %s: %s", status, detail), nil, "", map[string]any{"prediction_id": gjson.Get(prediction, "id").String()})
		}

		pollURL := gjson.Get(prediction, "urls.get").String()
		if pollURL == "" {
			id := gjson.Get(prediction, "id").String()
			if id == "" {
				return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "prediction response has no id", nil, "")
			}
			pollURL = "/v1/predictions/" + id
		}

		timer := time.NewTimer(e.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeTimeout,
					fmt.Sprintf("prediction still %s when the deadline passed", status), ctx.Err(), "", map[string]any{"prediction_id": gjson.Get(prediction, "id").String()})
			}
			return "", e.backend.transportError(ctx, ctx.Err(), "waiting for prediction")
		case <-timer.C:
		}

		resp, err := e.backend.prepareRequest(ctx, e.apiToken).Get(e.backend.endpoint(pollURL))
		if err != nil {
			return "", e.backend.transportError(ctx, err, "poll prediction failed")
		}
		if resp.IsError() {
			return "", e.backend.errorFromResponse(ctx, resp, "poll prediction failed")
		}
		prediction = resp.String()
	}
}

// predictionRequest targets the version endpoint for "owner/name:version"
// references and the model endpoint otherwise.
func predictionRequest(reference, prompt string, params aimodel.Params) (string, map[string]any) {
	input := map[string]any{"prompt": prompt}
	for key, value := range params {
		if replicateSkippedParams[key] {
			continue
		}
		input[key] = value
	}

	if _, version, ok := strings.Cut(reference, ":"); ok && version != "" {
		return "/v1/predictions", map[string]any{"version": version, "input": input}
	}
	return "/v1/models/" + strings.Trim(reference, "/") + "/predictions", map[string]any{"input": input}
}

func predictionOutput(prediction string) []string {
	output := gjson.Get(prediction, "output")
	if !output.Exists() || output.Type == gjson.Null {
		return nil
	}
	if output.IsArray() {
		var artifacts []string
		output.ForEach(func(_, value gjson.Result) bool {
			if s := value.String(); s != "" {
				artifacts = append(artifacts, s)
			}
			return true
		})
		return artifacts
	}
	if s := output.String(); s != "" {
		return []string{s}
	}
	return nil
}
