package availability

import (
	"ai-router/internal/config"
)

// ProvideChecker builds the checker and its per-family probers from config.
func ProvideChecker(cfg *config.Config) (*Checker, error) {
	return NewChecker(Options{
		Policy:           cfg.AvailabilityPolicy,
		Timeout:          cfg.AvailabilityTimeout,
		CacheTTL:         cfg.AvailabilityCacheTTL,
		CacheSize:        cfg.AvailabilityCacheSize,
		FailureThreshold: cfg.BreakerFailureThreshold,
		OpenTimeout:      cfg.BreakerOpenTimeout,
	},
		NewOllamaProber(cfg.OllamaBaseURL, cfg.AvailabilityTimeout),
		NewOpenRouterProber(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.AvailabilityTimeout),
		NewReplicateProber(cfg.ReplicateBaseURL, cfg.ReplicateAPIToken, cfg.AvailabilityTimeout),
	)
}
