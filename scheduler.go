package main

import (
	"fmt"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"github.com/seo-optimizer/content-optimizer/config"
	"github.com/seo-optimizer/content-optimizer/logging"
	"github.com/seo-optimizer/content-optimizer/middleware"
	"github.com/seo-optimizer/content-optimizer/stats"
)

type maintenanceJobs struct {
	monthly      *stats.Storage
	statistics   *logging.Statistics
	rateLimiter  *middleware.RateLimiter
	retainMonths int
}

// cleanupStats drops monthly counters past the retention window
func (j maintenanceJobs) cleanupStats() {
	j.monthly.Cleanup(j.retainMonths)
}

// persistStatistics saves request statistics and forgets idle clients
func (j maintenanceJobs) persistStatistics() {
	visitors := j.statistics.PruneVisitors()
	limiters := j.rateLimiter.Prune()
	if err := j.statistics.Save(); err != nil {
		log.Error().Err(err).Msg("Failed to save statistics")
		return
	}
	log.Debug().Int("visitors_pruned", visitors).Int("limiters_pruned", limiters).Msg("Statistics saved")
}

func newScheduler(cfg config.MaintenanceConfig, jobs maintenanceJobs) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(cfg.StatsCleanup, jobs.cleanupStats); err != nil {
		return nil, fmt.Errorf("failed to schedule stats cleanup: %w", err)
	}
	if _, err := c.AddFunc(cfg.StatisticsSave, jobs.persistStatistics); err != nil {
		return nil, fmt.Errorf("failed to schedule statistics save: %w", err)
	}
	return c, nil
}
