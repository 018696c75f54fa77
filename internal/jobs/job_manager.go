package jobs

import (
	"fmt"
	"log/slog"

	"gasexpress/internal/core/application/usecases/commands"
	"gasexpress/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	driverMovementJob  *DriverMovementJob
	snapshotCatchUpJob *SnapshotCatchUpJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	moveDriversHandler *commands.MoveDriversCommandHandler,
	tenants ports.TenantRepository,
	syncer ports.StateSyncer,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		driverMovementJob:  NewDriverMovementJob(moveDriversHandler, logger),
		snapshotCatchUpJob: NewSnapshotCatchUpJob(tenants, syncer, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.snapshotCatchUpJob.Start(); err != nil {
		return fmt.Errorf("failed to start snapshot catch-up job: %w", err)
	}

	if err := jm.driverMovementJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.snapshotCatchUpJob.Stop()
		return fmt.Errorf("failed to start driver movement job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.driverMovementJob.Stop()
	jm.snapshotCatchUpJob.Stop()
}
