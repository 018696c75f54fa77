package jobs

import (
	"context"
	"log/slog"

	"gasexpress/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// CatchUpSchedule is the cron expression for the snapshot catch-up pass.
const CatchUpSchedule = "@every 1m"

// SnapshotCatchUpJob periodically re-announces every tenant to the state
// syncer. The syncer debounces per tenant, so quiet tenants cost one
// publish a minute while busy tenants coalesce as usual. This is what
// recovers snapshots dropped by restarts or transient broker outages.
type SnapshotCatchUpJob struct {
	tenants ports.TenantRepository
	syncer  ports.StateSyncer
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSnapshotCatchUpJob creates a new catch-up job over all known tenants.
func NewSnapshotCatchUpJob(
	tenants ports.TenantRepository,
	syncer ports.StateSyncer,
	logger *slog.Logger,
) *SnapshotCatchUpJob {
	return &SnapshotCatchUpJob{
		tenants: tenants,
		syncer:  syncer,
		cron:    cron.New(),
		logger:  logger.With("component", "snapshot_catchup_job"),
	}
}

// Start begins the catch-up job on its one minute schedule.
func (j *SnapshotCatchUpJob) Start() error {
	_, err := j.cron.AddFunc(CatchUpSchedule, func() {
		ctx := context.Background()

		tenantIDs, err := j.tenants.GetAll(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Snapshot catch-up failed to list tenants", "error", err)
			return
		}

		for _, tenantID := range tenantIDs {
			j.syncer.NotifyChanged(tenantID)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot catch-up job started", "schedule", CatchUpSchedule)
	return nil
}

// Stop stops the catch-up job.
func (j *SnapshotCatchUpJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Snapshot catch-up job stopped")
}
