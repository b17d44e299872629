package inference

import (
	"ai-router/internal/config"
	"ai-router/internal/domain/airouter"
)

// ProvideExecutors builds one adapter per provider family.
func ProvideExecutors(cfg *config.Config) airouter.Executors {
	return Traced(airouter.Executors{
		NewOllamaExecutor(cfg.OllamaBaseURL, cfg.ProviderTimeout),
		NewChatExecutor(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterReferer, cfg.ProviderTimeout),
		NewReplicateExecutor(cfg.ReplicateBaseURL, cfg.ReplicateAPIToken, cfg.ProviderTimeout, cfg.ReplicatePollInterval),
	})
}
