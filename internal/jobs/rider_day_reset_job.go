package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RiderDayResetJob zeroes every active rider's per-day delivery counter.
// Runs once a day at UTC midnight so "today deliveries" tracks the
// operational day.
type RiderDayResetJob struct {
	handler commands.ResetRiderDayCountersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRiderDayResetJob creates a new job for the daily counter reset.
func NewRiderDayResetJob(handler commands.ResetRiderDayCountersCommandHandler, logger *slog.Logger) *RiderDayResetJob {
	return &RiderDayResetJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "rider_day_reset_job"),
	}
}

// Start schedules the reset at UTC midnight.
func (j *RiderDayResetJob) Start() error {
	_, err := j.cron.AddFunc("0 0 0 * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewResetRiderDayCountersCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Rider day reset command construction failed", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Rider day reset job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Rider day counters reset")
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rider day reset job started (running at UTC midnight)")
	return nil
}

// Stop stops the rider day reset job.
func (j *RiderDayResetJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rider day reset job stopped")
}
