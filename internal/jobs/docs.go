// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// InvoiceReconciliationJob finds delivered, non-deleted orders without an
// invoice and generates the missing invoices. Invoice generation right after
// delivery happens outside the status change transaction, so a crash or a
// directory outage can leave an order uninvoiced; this job closes that gap.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, cfg.InvoiceReconcileSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions with a leading seconds field. A pass
// that is still running when the next one is due is skipped.
//
// # Error Handling
//
// Generation is idempotent, so overlapping with the post-delivery path or with
// another replica is harmless. Failures are logged and retried on the next pass.
package jobs
