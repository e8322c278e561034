package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SnapshotReconcileJob sweeps orders that still reference a live delivery
// location and backfills missing snapshots. Runs every ten minutes; the
// sweep skips orders whose snapshots are already captured, so frequent
// runs are cheap.
type SnapshotReconcileJob struct {
	handler commands.ReconcileSnapshotsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSnapshotReconcileJob creates a new job for the snapshot sweep.
func NewSnapshotReconcileJob(handler commands.ReconcileSnapshotsCommandHandler, logger *slog.Logger) *SnapshotReconcileJob {
	return &SnapshotReconcileJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "snapshot_reconcile_job"),
	}
}

// Start begins the snapshot reconciliation job, running every ten minutes.
func (j *SnapshotReconcileJob) Start() error {
	_, err := j.cron.AddFunc("0 */10 * * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewReconcileSnapshotsCommand(false)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Snapshot reconcile command construction failed", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Snapshot reconcile job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot reconcile job started (running every ten minutes)")
	return nil
}

// Stop stops the snapshot reconciliation job.
func (j *SnapshotReconcileJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Snapshot reconcile job stopped")
}
