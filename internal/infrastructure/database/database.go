package database

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"ai-router/internal/infrastructure/logger"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Config holds database configuration
type Config struct {
	DatabaseURL  string
	ReplicaURLs  []string
	MaxIdle      int
	MaxOpen      int
	MaxLifetime  time.Duration
	LogLevel     gormlogger.LogLevel
	EnsureExists bool
}

// Connect opens the primary connection, registers read replicas when
// configured and applies the pool settings to every source.
func Connect(cfg Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("database DSN is empty")
	}
	if cfg.EnsureExists {
		if err := ensureDatabaseExists(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("ensure database: %w", err)
		}
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = gormlogger.Silent
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(cfg.LogLevel),
	})
	if err != nil {
		log := logger.GetLogger()
		log.Error().Err(err).Msg("unable to connect to database")
		return nil, err
	}

	var replicas []gorm.Dialector
	for _, dsn := range cfg.ReplicaURLs {
		if strings.TrimSpace(dsn) != "" {
			replicas = append(replicas, postgres.Open(dsn))
		}
	}
	if len(replicas) > 0 {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxIdleConns(cfg.MaxIdle).
			SetMaxOpenConns(cfg.MaxOpen).
			SetConnMaxLifetime(cfg.MaxLifetime)
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register db resolver: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	log := logger.GetLogger()
	log.Info().Int("replicas", len(replicas)).Msg("Successfully connected to database")
	return db, nil
}

// NewDB creates a new database connection using the primary DSN and an
// optional read replica.
func NewDB(dsn, replicaDSN string) (*gorm.DB, error) {
	return Connect(Config{
		DatabaseURL:  dsn,
		ReplicaURLs:  []string{replicaDSN},
		MaxIdle:      5,
		MaxOpen:      10,
		MaxLifetime:  time.Hour,
		LogLevel:     gormlogger.Silent,
		EnsureExists: true,
	})
}

func ensureDatabaseExists(dsn string) error {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return nil // key=value DSNs are left alone
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" || dbName == "postgres" {
		return nil
	}

	adminURL := *u
	adminURL.Path = "/postgres"

	sqlDB, err := sql.Open("postgres", adminURL.String())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var exists bool
	err = sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
