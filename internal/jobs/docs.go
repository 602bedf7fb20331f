// Package jobs provides scheduled background tasks for the delivery service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations of the delivery lifecycle.
//
// # Available Jobs
//
// 1. DeliveryAssignmentJob - Dispatches the oldest unassigned delivery to the nearest free driver
// 2. IntegrityAuditJob - Reloads every active delivery and reports stored state that breaks an invariant
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager, err := jobs.NewJobManager(cfg, dispatchHandler, reader, m, logger)
//	if err != nil {
//		return err
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions (with seconds). The defaults run
// dispatch every five seconds and the audit every ten minutes.
//
// # Error Handling
//
// - The assignment job ignores expected business outcomes (nothing to dispatch, no free driver)
// - The audit job logs each faulty delivery and exports the fault count as a gauge
// - Failed job starts will stop any already running jobs
package jobs
