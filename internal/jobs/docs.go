// Package jobs provides scheduled background tasks for the logistics system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the logistics core depends on.
//
// # Available Jobs
//
// 1. PlanningJob - Runs every minute to sweep pending orders into vehicle
// assignments, capacity reservations and shipments.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(planLogisticsHandler, logger)
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
// The planning job uses the cron expression "0 * * * * *", the top of every
// minute. Planning batches the whole pending backlog per run, so a higher
// frequency would only contend on the planner's own serialization.
//
// # Error Handling
//
// - Planning failures are logged and retried on the next tick
// - Empty cycles are not logged to keep quiet periods quiet
// - Failed job starts will stop any already running jobs
package jobs
