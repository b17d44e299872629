package airouter

import (
	"context"
	"fmt"
	"time"

	"ai-router/internal/domain/aimodel"
	"ai-router/internal/infrastructure/logger"
	"ai-router/internal/utils/requestid"
)

// Executors is the set of adapters handed to the router, one per family.
type Executors []Executor

// Router routes a task category to a model, checks availability, falls back
// once when needed and runs the call. It keeps no per-request state.
type Router struct {
	catalog      *aimodel.Catalog
	availability AvailabilityChecker
	resolver     *FallbackResolver
	executors    map[string]Executor
	usage        UsageRecorder
	observer     RouteObserver
}

// NewRouter binds every registered model to the executor of its family.
// A family without an executor is a startup error.
func NewRouter(
	catalog *aimodel.Catalog,
	availability AvailabilityChecker,
	executors Executors,
	usage UsageRecorder,
	observer RouteObserver,
) (*Router, error) {
	byFamily := make(map[aimodel.ProviderFamily]Executor, len(executors))
	for _, executor := range executors {
		if executor == nil {
			continue
		}
		byFamily[executor.Family()] = executor
	}

	bound := make(map[string]Executor)
	for _, model := range catalog.Models() {
		executor, ok := byFamily[model.Family]
		if !ok {
			return nil, fmt.Errorf("%w: %s (model %q)", ErrUnsupportedProvider, model.Family, model.ID)
		}
		bound[model.ID] = executor
	}

	return &Router{
		catalog:      catalog,
		availability: availability,
		resolver:     NewFallbackResolver(catalog),
		executors:    bound,
		usage:        usage,
		observer:     observer,
	}, nil
}

// Catalog exposes the read-only registry.
func (r *Router) Catalog() *aimodel.Catalog {
	return r.catalog
}

// RouteTask runs content against the model routed for category. The returned
// result always names the model that executed.
func (r *Router) RouteTask(ctx context.Context, category aimodel.TaskCategory, content string, opts Options) (*CallResult, error) {
	log := logger.GetLogger()

	category, err := aimodel.ParseTaskCategory(string(category))
	if err != nil {
		return nil, err
	}

	targetID, ok := r.catalog.RouteTarget(category)
	if !ok {
		return nil, fmt.Errorf("%w: no route for %s", ErrModelNotFound, category)
	}
	model, ok := r.catalog.Model(targetID)
	if !ok {
		return nil, fmt.Errorf("%w: %q routed for %s", ErrModelNotFound, targetID, category)
	}

	routedFrom := ""
	if !r.availability.IsAvailable(ctx, model) {
		substitute, err := r.resolver.Resolve(category, model)
		if err != nil {
			log.Warn().
				Str("task_type", string(category)).
				Str("model", model.ID).
				Err(err).
				Msg("routed model unavailable and no fallback resolved")
			return nil, err
		}
		log.Warn().
			Str("task_type", string(category)).
			Str("from", model.ID).
			Str("to", substitute.ID).
			Msg("routed model unavailable, using fallback")
		if r.observer != nil {
			r.observer.ObserveFallback(category, model, substitute)
		}
		routedFrom = model.ID
		model = substitute
	}

	executor, ok := r.executors[model.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s (model %q)", ErrUnsupportedProvider, model.Family, model.ID)
	}

	params := MergeParams(model.Parameters, opts)
	start := time.Now()
	result, err := executor.Execute(ctx, model, content, params)
	if r.observer != nil {
		r.observer.ObserveExecution(model, category, time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	result.ModelID = model.ID
	result.ModelName = model.Name()
	result.Provider = model.Family
	result.RoutedFrom = routedFrom

	r.recordUsage(UsageEvent{
		Model:     model,
		Category:  category,
		Usage:     result.Usage,
		RequestID: requestid.From(ctx),
	})

	log.Debug().
		Str("task_type", string(category)).
		Str("model", model.ID).
		Int("total_tokens", result.Usage.TotalTokens).
		Msg("task routed")
	return result, nil
}

func (r *Router) recordUsage(event UsageEvent) {
	if r.usage == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log := logger.GetLogger()
			log.Warn().Interface("panic", rec).Str("model", event.Model.ID).Msg("usage recorder panicked")
		}
	}()
	r.usage.Record(event)
}

// EstimateCost is tokens × costPerToken of the model routed for category.
// It returns 0 when the category or its model cannot be resolved.
func (r *Router) EstimateCost(category aimodel.TaskCategory, tokens int) float64 {
	model, ok := r.catalog.Route(category)
	if !ok {
		return 0
	}
	return model.Cost(tokens).InexactFloat64()
}

// ModelsByCapability lists models carrying the tag in priority order.
func (r *Router) ModelsByCapability(capability aimodel.Capability) []*aimodel.Model {
	return r.catalog.ModelsByCapability(capability)
}

// MergeParams overlays caller overrides on a model's defaults.
func MergeParams(defaults aimodel.Params, opts Options) aimodel.Params {
	params := defaults.Clone()
	for key, value := range opts.Parameters {
		params[key] = value
	}
	if opts.MaxTokens != nil {
		params["max_tokens"] = *opts.MaxTokens
		delete(params, "maxTokens")
	}
	if opts.Temperature != nil {
		params["temperature"] = *opts.Temperature
	}
	if opts.Context != nil {
		params["context"] = opts.Context
	}
	return params
}
