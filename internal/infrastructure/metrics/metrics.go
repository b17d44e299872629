package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var usageCountersOnce sync.Once

// AI router metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status", "task_type"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Backend executions, one per routed task
	ExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "executions_total",
			Help:      "Backend calls by model and outcome",
		},
		[]string{"model", "provider", "task_type", "outcome"},
	)

	ExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "execution_duration_seconds",
			Help:      "Backend call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model", "provider"},
	)

	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "fallbacks_total",
			Help:      "Tasks served by a fallback model",
		},
		[]string{"task_type", "from", "to"},
	)

	TokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "tokens_total",
			Help:      "Tokens consumed by type",
		},
		[]string{"model", "provider", "type"},
	)

	ImagesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "images_generated_total",
			Help:      "Images returned by image backends",
		},
		[]string{"model"},
	)

	// Provider errors
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "provider_errors_total",
			Help:      "Total provider call failures",
		},
		[]string{"provider", "error_type"},
	)

	// Provider health gauge
	ProviderHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "provider_health",
			Help:      "Provider health status (1=healthy, 0=unhealthy)",
		},
		[]string{"provider"},
	)

	AvailabilityChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "availability_checks_total",
			Help:      "Availability decisions by source and result",
		},
		[]string{"provider", "source", "result"},
	)

	// User agent metrics (normalized to keep low cardinality)
	UserAgentFamilyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "user_agent_family_total",
			Help:      "Requests by user agent family (browser/cli/sdk/unknown)",
		},
		[]string{"family"},
	)
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint, status, taskType string, durationSec float64) {
	if taskType == "" {
		taskType = "none"
	}
	RequestsTotal.WithLabelValues(method, endpoint, status, taskType).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordExecution records one backend call.
func RecordExecution(model, provider, taskType string, success bool, durationSec float64) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	ExecutionsTotal.WithLabelValues(model, provider, taskType, outcome).Inc()
	ExecutionDuration.WithLabelValues(model, provider).Observe(durationSec)
}

func RecordFallback(taskType, from, to string) {
	FallbacksTotal.WithLabelValues(taskType, from, to).Inc()
}

// RecordTokens records token usage for a completed call
func RecordTokens(model, provider string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		TokensTotal.WithLabelValues(model, provider, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		TokensTotal.WithLabelValues(model, provider, "completion").Add(float64(completionTokens))
	}
}

func RecordImages(model string, count int) {
	if count <= 0 {
		return
	}
	ImagesGeneratedTotal.WithLabelValues(model).Add(float64(count))
}

// RecordProviderError records a provider error
func RecordProviderError(provider, errorType string) {
	if errorType == "" {
		errorType = "unknown"
	}
	ProviderErrorsTotal.WithLabelValues(provider, errorType).Inc()
}

// SetProviderHealth sets the health status of a provider
func SetProviderHealth(provider string, healthy bool) {
	val := 0.0
	if healthy {
		val = 1.0
	}
	ProviderHealth.WithLabelValues(provider).Set(val)
}

// RecordAvailabilityCheck counts an availability decision. Source is one of
// probe, cache, breaker, policy or cancelled.
func RecordAvailabilityCheck(provider, source string, available bool) {
	result := "available"
	if !available {
		result = "unavailable"
	}
	AvailabilityChecksTotal.WithLabelValues(provider, source, result).Inc()
}

// RegisterUsageCounters exposes the usage recorder's drop and failure
// counters. Only the first call registers.
func RegisterUsageCounters(dropped, failed func() int64) {
	usageCountersOnce.Do(func() {
		promauto.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "usage_records_dropped_total",
			Help:      "Usage records dropped because the queue was full",
		}, func() float64 { return float64(dropped()) })
		promauto.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "ai",
			Subsystem: "router",
			Name:      "usage_records_failed_total",
			Help:      "Usage records the sink failed to store",
		}, func() float64 { return float64(failed()) })
	})
}

// RecordUserAgent records the user agent family of a request
func RecordUserAgent(ua string) {
	UserAgentFamilyTotal.WithLabelValues(userAgentFamily(normalizeUserAgent(ua))).Inc()
}

func normalizeUserAgent(ua string) string {
	ua = strings.TrimSpace(strings.ToLower(ua))
	if ua == "" {
		return "unknown"
	}
	norm := strings.Fields(ua)[0]
	if len(norm) > 60 {
		norm = norm[:60]
	}
	return norm
}

func userAgentFamily(normUA string) string {
	switch {
	case strings.Contains(normUA, "mozilla") || strings.Contains(normUA, "chrome") || strings.Contains(normUA, "safari"):
		return "browser"
	case strings.Contains(normUA, "curl") || strings.Contains(normUA, "wget") || strings.Contains(normUA, "httpie"):
		return "cli"
	case strings.Contains(normUA, "axios") || strings.Contains(normUA, "node-fetch") || strings.Contains(normUA, "python-requests") || strings.Contains(normUA, "go-http-client"):
		return "sdk"
	default:
		return "unknown"
	}
}
