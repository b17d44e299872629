package crontab

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ai-router/internal/config"
	"ai-router/internal/domain/aimodel"
	"ai-router/internal/infrastructure/logger"
	"ai-router/internal/utils/platformerrors"

	"github.com/mileusna/crontab"
)

const (
	DefaultHealthRefreshInterval = 1               // in minutes
	CronJobTimeout               = 2 * time.Minute // Timeout for each cron job execution
)

// HealthRefresher re-probes models and reports per-family health.
type HealthRefresher interface {
	Refresh(ctx context.Context, models []*aimodel.Model) map[aimodel.ProviderFamily]bool
}

type Crontab struct {
	ctab      *crontab.Crontab
	catalog   *aimodel.Catalog
	refresher HealthRefresher
	interval  int
}

func NewCrontab(cfg *config.Config, catalog *aimodel.Catalog, refresher HealthRefresher) *Crontab {
	return &Crontab{
		ctab:      crontab.New(),
		catalog:   catalog,
		refresher: refresher,
		interval:  cfg.AvailabilityRefreshMinutes,
	}
}

// Run refreshes provider health once, schedules the periodic refresh and
// blocks until ctx is done. A non-positive interval disables the schedule.
func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	startCtx, cancel := context.WithTimeout(ctx, CronJobTimeout)
	c.RefreshProviderHealth(startCtx)
	cancel()

	if c.interval > 0 {
		cronExpr := fmt.Sprintf("*/%d * * * *", c.interval)
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.RefreshProviderHealth(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add provider health job")
		}
		log.Info().Msgf("Provider health refresh scheduled: every %d minute(s)", c.interval)
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

// RefreshProviderHealth probes every registered model and logs families
// that have no usable model left.
func (c *Crontab) RefreshProviderHealth(ctx context.Context) map[aimodel.ProviderFamily]bool {
	log := logger.GetLogger()
	health := c.refresher.Refresh(ctx, c.catalog.Models())

	families := make([]string, 0, len(health))
	for family := range health {
		families = append(families, string(family))
	}
	sort.Strings(families)
	for _, family := range families {
		if !health[aimodel.ProviderFamily(family)] {
			log.Warn().Str("provider", family).Msg("no available model for provider")
		}
	}
	return health
}
