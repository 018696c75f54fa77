// Package jobs provides scheduled background tasks for the dispatch engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the platform depends on.
//
// # Available Jobs
//
// 1. DriverMovementJob - Runs every three seconds to advance on-duty drivers
// toward their delivery destinations and publish fresh positions.
// 2. SnapshotCatchUpJob - Runs every minute to re-announce every tenant to
// the state syncer, so snapshots lost to debounce shutdowns or transient
// broker failures are eventually republished.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(moveDriversHandler, tenantRepo, syncer, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job runs never abort the schedule: failures are logged and the next tick
// starts from the current persisted state. Failed job starts stop any
// already running jobs.
package jobs
