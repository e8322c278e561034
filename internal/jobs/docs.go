// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the restaurant service.
//
// # Available Jobs
//
// 1. RiderDayResetJob - Runs at UTC midnight to zero every active rider's per-day delivery counter
// 2. SnapshotReconcileJob - Runs every ten minutes to backfill missing location snapshots on orders
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(resetHandler, reconcileHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reset job uses "0 0 0 * * *" (daily at UTC midnight) so the "today"
// counters line up with the operational day used by order numbering. The
// reconcile job uses "0 */10 * * * *"; the sweep writes only orders whose
// snapshots actually changed, so the short interval is harmless.
//
// # Error Handling
//
// - Both jobs log failures and retry naturally on the next tick
// - Failed job starts will stop any already running jobs
package jobs
