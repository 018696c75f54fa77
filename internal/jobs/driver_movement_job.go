package jobs

import (
	"context"
	"log/slog"

	"gasexpress/internal/core/application/usecases/commands"
	"gasexpress/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// MovementSchedule is the cron expression for the driver movement tick.
const MovementSchedule = "*/3 * * * * *"

// DriverMovementJob manages the scheduled movement of drivers.
// Runs every three seconds to advance on-route drivers toward their
// destinations and to bootstrap positions for fresh on-duty drivers.
type DriverMovementJob struct {
	handler *commands.MoveDriversCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDriverMovementJob creates a new job for moving drivers.
func NewDriverMovementJob(handler *commands.MoveDriversCommandHandler, logger *slog.Logger) *DriverMovementJob {
	return &DriverMovementJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "driver_movement_job"),
	}
}

// Start begins the driver movement job on its three second schedule.
func (j *DriverMovementJob) Start() error {
	_, err := j.cron.AddFunc(MovementSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewMoveDriversCommand()

		metrics.MovementTicksCounter.Inc()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Driver movement tick failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Driver movement job started", "schedule", MovementSchedule)
	return nil
}

// Stop stops the driver movement job.
func (j *DriverMovementJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Driver movement job stopped")
}
