package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/jordanlanch/industrycatalog/pkg/industries"
	"github.com/jordanlanch/industrycatalog/pkg/logger"
	"github.com/jordanlanch/industrycatalog/pkg/snapshot"
	"github.com/robfig/cron/v3"
)

// CatalogSyncer rebuilds the sector and country catalogs
type CatalogSyncer interface {
	Sync(ctx context.Context) (industries.SyncResult, error)
}

// Snapshotter uploads an export of the catalog
type Snapshotter interface {
	CreateSnapshot(ctx context.Context) (*snapshot.Result, error)
}

// CronManager manages scheduled jobs
type CronManager struct {
	cron    *cron.Cron
	syncer  CatalogSyncer
	logger  logger.Logger
	timeout time.Duration
}

// NewCronManager creates a new cron manager
func NewCronManager(syncer CatalogSyncer, log logger.Logger) *CronManager {
	if log == nil {
		log = logger.Default()
	}

	return &CronManager{
		// A sync still running when the next tick fires is not started twice
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		syncer:  syncer,
		logger:  log,
		timeout: 5 * time.Minute,
	}
}

// SetupJobs schedules the catalog sync. An empty schedule disables it.
func (cm *CronManager) SetupJobs(schedule string) error {
	if schedule == "" {
		cm.logger.Info("catalog sync disabled")
		return nil
	}

	_, err := cm.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
		defer cancel()

		if _, err := cm.RunSync(ctx); err != nil {
			cm.logger.Error("catalog sync failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid catalog sync schedule %q: %w", schedule, err)
	}

	cm.logger.Info("cron jobs configured", "catalog_sync", schedule)
	return nil
}

// SetupSnapshotJob schedules catalog snapshots. An empty schedule disables them.
func (cm *CronManager) SetupSnapshotJob(schedule string, snapshotter Snapshotter) error {
	if schedule == "" || snapshotter == nil {
		cm.logger.Info("catalog snapshots disabled")
		return nil
	}

	_, err := cm.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
		defer cancel()

		if _, err := snapshotter.CreateSnapshot(ctx); err != nil {
			cm.logger.Error("catalog snapshot failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", schedule, err)
	}

	cm.logger.Info("cron jobs configured", "catalog_snapshot", schedule)
	return nil
}

// RunSync runs the catalog sync once (for manual triggers)
func (cm *CronManager) RunSync(ctx context.Context) (industries.SyncResult, error) {
	start := time.Now()
	result, err := cm.syncer.Sync(ctx)
	if err != nil {
		return result, err
	}

	cm.logger.Info("catalog sync completed",
		"sectors_inserted", result.Sectors,
		"countries_inserted", result.Countries,
		"duration", time.Since(start).String(),
	)
	return result, nil
}

// Start starts the cron scheduler
func (cm *CronManager) Start() {
	cm.logger.Info("starting cron scheduler", "jobs", len(cm.cron.Entries()))
	cm.cron.Start()
}

// Stop stops the scheduler and returns a context that is done once running
// jobs have finished
func (cm *CronManager) Stop() context.Context {
	cm.logger.Info("stopping cron scheduler")
	return cm.cron.Stop()
}
