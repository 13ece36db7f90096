// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the service.
//
// # Available Jobs
//
// 1. OutboxDispatcherJob - Runs every second to publish pending offer status
// notifications from the transactional outbox to the message broker
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(outboxRepository, producer, logger)
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
// The dispatcher uses the cron expression "* * * * * *" which means it runs
// every second, keeping notification latency low without coupling publishing
// to the request path.
//
// # Error Handling
//
// A record that fails to publish stays unpublished and is retried on the next
// tick. A record whose published stamp fails to persist is republished, so
// consumers must treat notifications as at-least-once.
package jobs
