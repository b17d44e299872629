package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton, set by Load.
var globalConfig *Config

const (
	AvailabilityPolicyProbe           = "probe"
	AvailabilityPolicyAssumeAvailable = "assume_available"
)

// Config holds all environment backed configuration for ai-router.
type Config struct {
	// HTTP Server
	HTTPPort    int `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`
	PprofPort   int `env:"PPROF_PORT" envDefault:"6060"`

	// Model document
	ModelsConfigFile string `env:"AI_MODELS_CONFIG_FILE" envDefault:"config/models.json"`

	// Backends
	OllamaBaseURL         string        `env:"OLLAMA_BASE_URL" envDefault:"http://127.0.0.1:11434"`
	OpenRouterBaseURL     string        `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	OpenRouterAPIKey      string        `env:"OPENROUTER_API_KEY"`
	OpenRouterReferer     string        `env:"OPENROUTER_HTTP_REFERER"`
	ReplicateBaseURL      string        `env:"REPLICATE_BASE_URL" envDefault:"https://api.replicate.com"`
	ReplicateAPIToken     string        `env:"REPLICATE_API_TOKEN"`
	ProviderTimeout       time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"120s"`
	ReplicatePollInterval time.Duration `env:"REPLICATE_POLL_INTERVAL" envDefault:"1s"`

	// Availability
	AvailabilityPolicy         string        `env:"AVAILABILITY_POLICY" envDefault:"probe"`
	AvailabilityTimeout        time.Duration `env:"AVAILABILITY_TIMEOUT" envDefault:"2s"`
	AvailabilityCacheTTL       time.Duration `env:"AVAILABILITY_CACHE_TTL" envDefault:"15s"`
	AvailabilityCacheSize      int           `env:"AVAILABILITY_CACHE_SIZE" envDefault:"128"`
	AvailabilityRefreshMinutes int           `env:"AVAILABILITY_REFRESH_MINUTES" envDefault:"1"`
	BreakerFailureThreshold    uint32        `env:"BREAKER_FAILURE_THRESHOLD" envDefault:"5"`
	BreakerOpenTimeout         time.Duration `env:"BREAKER_OPEN_TIMEOUT" envDefault:"30s"`

	// Usage logging
	DatabaseURL          string        `env:"DATABASE_URL"`
	DBPostgresqlRead1DSN string        `env:"DB_POSTGRESQL_READ1_DSN"`
	UsageQueueSize       int           `env:"USAGE_QUEUE_SIZE" envDefault:"256"`
	UsageWriteTimeout    time.Duration `env:"USAGE_WRITE_TIMEOUT" envDefault:"5s"`

	// Observability / Logging
	OTLPEndpoint      string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders       string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName       string `env:"SERVICE_NAME" envDefault:"ai-router"`
	ServiceNamespace  string `env:"SERVICE_NAMESPACE" envDefault:"ai"`
	Environment       string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string `env:"LOG_FORMAT" envDefault:"console"`
	LogPromptPIILevel string `env:"LOG_PROMPT_PII_LEVEL" envDefault:"hashed"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:8080"`

	// Features
	AutoMigrate   bool `env:"AUTO_MIGRATE" envDefault:"true"`
	EnableSwagger bool `env:"ENABLE_SWAGGER" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	for name, raw := range map[string]string{
		"OLLAMA_BASE_URL":     cfg.OllamaBaseURL,
		"OPENROUTER_BASE_URL": cfg.OpenRouterBaseURL,
		"REPLICATE_BASE_URL":  cfg.ReplicateBaseURL,
	} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	cfg.AvailabilityPolicy = strings.ToLower(strings.TrimSpace(cfg.AvailabilityPolicy))
	switch cfg.AvailabilityPolicy {
	case AvailabilityPolicyProbe, AvailabilityPolicyAssumeAvailable:
	default:
		return nil, fmt.Errorf("invalid AVAILABILITY_POLICY %q", cfg.AvailabilityPolicy)
	}
	if cfg.AvailabilityTimeout <= 0 {
		return nil, fmt.Errorf("AVAILABILITY_TIMEOUT must be positive")
	}
	if cfg.ProviderTimeout <= 0 {
		return nil, fmt.Errorf("PROVIDER_TIMEOUT must be positive")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg
	return cfg, nil
}

// GetGlobal returns the config installed by the last successful Load.
func GetGlobal() *Config {
	return globalConfig
}

// UsageSinkEnabled reports whether usage records go to Postgres.
func (c *Config) UsageSinkEnabled() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

var Version = "dev"
