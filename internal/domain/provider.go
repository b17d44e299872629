package domain

import (
	"github.com/google/wire"

	"ai-router/internal/config"
	"ai-router/internal/domain/aimodel"
	"ai-router/internal/domain/airouter"
	"ai-router/internal/domain/aiusage"
	"ai-router/internal/infrastructure/availability"
	"ai-router/internal/infrastructure/metrics"
	"ai-router/pkg/telemetry"
)

// ProvideRouter binds the catalog to the executors. The availability checker
// doubles as the route observer so execution outcomes feed its breakers.
func ProvideRouter(
	catalog *aimodel.Catalog,
	checker *availability.Checker,
	executors airouter.Executors,
	recorder *aiusage.Recorder,
) (*airouter.Router, error) {
	return airouter.NewRouter(catalog, checker, executors, recorder, checker)
}

// ProvideRecorder starts the background usage writer.
func ProvideRecorder(cfg *config.Config, repo aiusage.Repository) *aiusage.Recorder {
	recorder := aiusage.NewRecorder(repo, cfg.UsageQueueSize, cfg.UsageWriteTimeout)
	metrics.RegisterUsageCounters(recorder.Dropped, recorder.Failed)
	return recorder
}

// ProvideRedactor builds the prompt redactor used by request logging.
func ProvideRedactor(cfg *config.Config) *telemetry.Redactor {
	return telemetry.NewRedactor(telemetry.ParsePIILevel(cfg.LogPromptPIILevel), cfg.ServiceName)
}

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	ProvideRouter,
	ProvideRecorder,
	ProvideRedactor,
	aiusage.NewService,
)
