package availability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ai-router/internal/domain/aimodel"
	"ai-router/internal/infrastructure/logger"
	"ai-router/internal/infrastructure/metrics"
	"ai-router/internal/utils/platformerrors"

	"github.com/sony/gobreaker"
)

const (
	PolicyProbe           = "probe"
	PolicyAssumeAvailable = "assume_available"
)

// Options configures a Checker.
type Options struct {
	Policy           string
	Timeout          time.Duration
	CacheTTL         time.Duration
	CacheSize        int
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// Checker decides whether a model can serve a request. It never panics and
// never blocks longer than Options.Timeout; every fault reads as unavailable.
// It also observes routed executions so that repeated backend failures open
// the family's circuit breaker.
type Checker struct {
	policy   string
	timeout  time.Duration
	probers  map[aimodel.ProviderFamily]Prober
	breakers map[aimodel.ProviderFamily]*gobreaker.CircuitBreaker
	cache    *resultCache
}

func NewChecker(opts Options, probers ...Prober) (*Checker, error) {
	if opts.Policy == "" {
		opts.Policy = PolicyProbe
	}
	if opts.Policy != PolicyProbe && opts.Policy != PolicyAssumeAvailable {
		return nil, fmt.Errorf("unknown availability policy %q", opts.Policy)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}

	cache, err := newResultCache(opts.CacheSize, opts.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("availability cache: %w", err)
	}

	c := &Checker{
		policy:   opts.Policy,
		timeout:  opts.Timeout,
		probers:  make(map[aimodel.ProviderFamily]Prober, len(probers)),
		breakers: make(map[aimodel.ProviderFamily]*gobreaker.CircuitBreaker, len(aimodel.Families)),
		cache:    cache,
	}
	for _, prober := range probers {
		c.probers[prober.Family()] = prober
	}
	for _, family := range aimodel.Families {
		c.breakers[family] = newBreaker(family, opts.FailureThreshold, opts.OpenTimeout)
	}
	return c, nil
}

func newBreaker(family aimodel.ProviderFamily, threshold uint32, openTimeout time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        string(family),
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log := logger.GetLogger()
			log.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("provider circuit breaker state changed")
			metrics.SetProviderHealth(name, to != gobreaker.StateOpen)
		},
	})
}

// IsAvailable implements the router's availability contract.
func (c *Checker) IsAvailable(ctx context.Context, model *aimodel.Model) (available bool) {
	if model == nil {
		return false
	}
	defer func() {
		if rec := recover(); rec != nil {
			log := logger.GetLogger()
			log.Warn().Interface("panic", rec).Str("model", model.ID).Msg("availability check panicked")
			available = false
		}
	}()

	family := string(model.Family)
	if c.policy == PolicyAssumeAvailable {
		metrics.RecordAvailabilityCheck(family, "policy", true)
		return true
	}

	if breaker, ok := c.breakers[model.Family]; ok && breaker.State() == gobreaker.StateOpen {
		metrics.RecordAvailabilityCheck(family, "breaker", false)
		return false
	}

	if cached, ok := c.cache.Get(model.ID); ok {
		metrics.RecordAvailabilityCheck(family, "cache", cached)
		return cached
	}

	err := c.probe(ctx, model)
	if ctx.Err() != nil {
		// The caller went away; the outcome says nothing about the model.
		metrics.RecordAvailabilityCheck(family, "cancelled", false)
		return false
	}
	available = err == nil
	if err != nil {
		log := logger.GetLogger()
		log.Debug().Err(err).Str("model", model.ID).Str("provider", family).Msg("model unavailable")
	}
	c.cache.Set(model.ID, available)
	metrics.RecordAvailabilityCheck(family, "probe", available)
	return available
}

// probe runs the family prober in its own goroutine so that a prober which
// ignores its context still cannot hold the caller past the timeout.
func (c *Checker) probe(ctx context.Context, model *aimodel.Model) error {
	prober, ok := c.probers[model.Family]
	if !ok {
		return fmt.Errorf("no prober for %s", model.Family)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- fmt.Errorf("prober panicked: %v", rec)
			}
		}()
		done <- prober.Probe(ctx, model)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh probes every given model, bypassing the cache, and reports which
// families have at least one usable model.
func (c *Checker) Refresh(ctx context.Context, models []*aimodel.Model) map[aimodel.ProviderFamily]bool {
	health := make(map[aimodel.ProviderFamily]bool)
	for _, model := range models {
		c.cache.Invalidate(model.ID)
		available := c.IsAvailable(ctx, model)
		health[model.Family] = health[model.Family] || available
	}
	for family, healthy := range health {
		metrics.SetProviderHealth(string(family), healthy)
	}
	return health
}

// ObserveExecution feeds backend outcomes into the family breaker. Only
// faults of the backend itself count as failures; a request the backend
// rejected with a 4xx other than 429 does not.
func (c *Checker) ObserveExecution(model *aimodel.Model, category aimodel.TaskCategory, elapsed time.Duration, err error) {
	metrics.RecordExecution(model.ID, string(model.Family), string(category), err == nil, elapsed.Seconds())
	if errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		metrics.RecordProviderError(string(model.Family), errorType(err))
	}
	failure := backendFault(err)
	if failure != nil {
		c.cache.Invalidate(model.ID)
	}
	breaker, ok := c.breakers[model.Family]
	if !ok {
		return
	}
	_, _ = breaker.Execute(func() (interface{}, error) {
		return nil, failure
	})
}

// backendFault returns err when it points at an unhealthy backend and nil
// when the backend answered but refused the request.
func backendFault(err error) error {
	if err == nil {
		return nil
	}
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) && platformErr.StatusCode != 0 {
		if platformErr.StatusCode >= http.StatusInternalServerError || platformErr.StatusCode == http.StatusTooManyRequests {
			return err
		}
		return nil
	}
	return err
}

func (c *Checker) ObserveFallback(category aimodel.TaskCategory, from, to *aimodel.Model) {
	metrics.RecordFallback(string(category), from.ID, to.ID)
}

// BreakerState exposes the breaker of a family, mostly for readiness output.
func (c *Checker) BreakerState(family aimodel.ProviderFamily) gobreaker.State {
	if breaker, ok := c.breakers[family]; ok {
		return breaker.State()
	}
	return gobreaker.StateClosed
}

func errorType(err error) string {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		if platformErr.StatusCode != 0 {
			return fmt.Sprintf("http_%d", platformErr.StatusCode)
		}
		return string(platformErr.Type)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "unknown"
}
