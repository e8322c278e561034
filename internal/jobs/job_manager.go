package jobs

import (
	"fmt"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	riderDayResetJob     *RiderDayResetJob
	snapshotReconcileJob *SnapshotReconcileJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	resetHandler commands.ResetRiderDayCountersCommandHandler,
	reconcileHandler commands.ReconcileSnapshotsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		riderDayResetJob:     NewRiderDayResetJob(resetHandler, logger),
		snapshotReconcileJob: NewSnapshotReconcileJob(reconcileHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.riderDayResetJob.Start(); err != nil {
		return fmt.Errorf("failed to start rider day reset job: %w", err)
	}

	if err := jm.snapshotReconcileJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.riderDayResetJob.Stop()
		return fmt.Errorf("failed to start snapshot reconcile job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.snapshotReconcileJob.Stop()
	jm.riderDayResetJob.Stop()
}
