// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// AutoDispatchJob takes the oldest pending order with a dropoff location,
// ranks the available couriers for it and assigns the best one that still
// accepts work.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	job := jobs.NewAutoDispatchJob(pendingOrders, findBestCourier, assignCourier, "*/5 * * * * *", logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The schedule is a six field cron expression (seconds first). Overlapping
// ticks are skipped while a previous round is still running.
//
// # Error Handling
//
//   - Empty queues and rankings are not errors
//   - A courier that became unavailable is skipped in favour of the next candidate
//   - An order assigned concurrently ends the round quietly
//   - Anything else is logged at error level
package jobs
