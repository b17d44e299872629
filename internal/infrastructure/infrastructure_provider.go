package infrastructure

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"ai-router/internal/config"
	"ai-router/internal/domain/aimodel"
	"ai-router/internal/domain/aiusage"
	"ai-router/internal/infrastructure/availability"
	"ai-router/internal/infrastructure/crontab"
	"ai-router/internal/infrastructure/database"
	"ai-router/internal/infrastructure/inference"
	"ai-router/internal/infrastructure/logger"
	"ai-router/internal/infrastructure/persistence"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger builds the process logger from config and installs it globally.
func ProvideLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
}

// ProvideDatabase connects the usage database. Without DATABASE_URL it
// returns a nil handle and usage goes to the log sink.
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	if !cfg.UsageSinkEnabled() {
		log.Info().Msg("DATABASE_URL not set, usage records go to the log")
		return nil, nil
	}

	db, err := database.NewDB(cfg.DatabaseURL, cfg.DBPostgresqlRead1DSN)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(context.Background(), db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideUsageRepository picks the Postgres repository when a database is
// connected and the log sink otherwise.
func ProvideUsageRepository(db *gorm.DB, log zerolog.Logger) aiusage.Repository {
	if db == nil {
		return persistence.NewLogUsageRepository(log)
	}
	return persistence.NewUsageRepository(db)
}

// ProvideCatalog loads the model document named by AI_MODELS_CONFIG_FILE.
func ProvideCatalog(cfg *config.Config, log zerolog.Logger) (*aimodel.Catalog, error) {
	catalog, err := config.LoadCatalog(cfg.ModelsConfigFile)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("file", cfg.ModelsConfigFile).
		Int("models", len(catalog.Models())).
		Msg("model catalog loaded")
	return catalog, nil
}

// ProvideHealthRefresher exposes the checker to the crontab.
func ProvideHealthRefresher(checker *availability.Checker) crontab.HealthRefresher {
	return checker
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(db *gorm.DB, logger zerolog.Logger) *Infrastructure {
	return &Infrastructure{
		DB:     db,
		Logger: logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Logger
	ProvideLogger,

	// Database
	ProvideDatabase,
	ProvideUsageRepository,

	// Model catalog and provider adapters
	ProvideCatalog,
	inference.ProvideExecutors,

	// Availability checks and circuit breakers
	availability.ProvideChecker,
	ProvideHealthRefresher,

	// Crontab for provider health
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
