package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-router/internal/config"
	"ai-router/internal/domain/aiusage"
	"ai-router/internal/infrastructure"
	"ai-router/internal/infrastructure/crontab"
	"ai-router/internal/infrastructure/logger"
	"ai-router/internal/infrastructure/observability"
	"ai-router/internal/interfaces/httpserver"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	_ "net/http/pprof"
)

const shutdownTimeout = 10 * time.Second

type Application struct {
	httpServer *httpserver.HTTPServer
	crontab    *crontab.Crontab
	recorder   *aiusage.Recorder
	infra      *infrastructure.Infrastructure
	config     *config.Config
}

// @title AI Router API
// @version 1.0
// @description Routes AI tasks to local or hosted models by task type, with availability checks, one-hop fallback and usage accounting.
// @BasePath /
func (application *Application) Start(ctx context.Context) error {
	log := application.infra.Logger
	cfg := application.config

	eg, ctx := errgroup.WithContext(ctx)

	pprofServer := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.PprofPort),
		Handler:           http.DefaultServeMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		return listen(pprofServer)
	})
	eg.Go(func() error {
		return listen(metricsServer)
	})
	eg.Go(func() error {
		return application.crontab.Run(ctx)
	})
	eg.Go(func() error {
		return application.httpServer.Run()
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := errors.Join(
			application.httpServer.Shutdown(shutdownCtx),
			metricsServer.Shutdown(shutdownCtx),
			pprofServer.Shutdown(shutdownCtx),
			application.recorder.Close(shutdownCtx),
		)
		if err != nil {
			log.Error().Err(err).Msg("graceful shutdown")
		}
		return nil
	})

	return eg.Wait()
}

func listen(server *http.Server) error {
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := CreateApplication()
	if err != nil {
		log := logger.GetLogger()
		log.Fatal().Err(err).Msg("create application")
	}
	log := application.infra.Logger

	otelShutdown, err := observability.Setup(ctx, application.config, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	if err := application.Start(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped")
		stop()
		os.Exit(1)
	}
}
