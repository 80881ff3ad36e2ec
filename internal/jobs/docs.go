// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order pipeline.
//
// # Available Jobs
//
// 1. ExpirePendingOrdersJob - Runs every minute to cancel orders whose payment window has lapsed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expirePendingOrdersHandler, pendingOrderTTL, logger)
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
// The expiry sweep uses the cron expression "* * * * *" and so runs once a
// minute. The payment window itself comes from configuration; the sweep
// frequency only bounds how stale a pending order can get before cancellation.
//
// # Error Handling
//
// - Sweep errors are logged and retried on the next tick; a failure on one
//   order does not block the rest of the sweep
// - Failed job starts will stop any already running jobs
package jobs
