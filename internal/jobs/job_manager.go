package jobs

import (
	"fmt"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Schedules holds the cron expressions of the jobs. An empty expression
// disables the job.
type Schedules struct {
	Assignment string
	Audit      string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	assignmentJob *DeliveryAssignmentJob
	auditJob      *IntegrityAuditJob
	started       []func()
}

// NewJobManager creates a new job manager with all enabled jobs. Schedules
// are parsed here so a typo fails at startup.
func NewJobManager(
	schedules Schedules,
	dispatchHandler DispatchHandler,
	reader ports.DeliveryReader,
	m *metrics.Metrics,
	logger *zap.Logger,
) (*JobManager, error) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	jm := &JobManager{}

	if schedules.Assignment != "" {
		if _, err := parser.Parse(schedules.Assignment); err != nil {
			return nil, fmt.Errorf("invalid assignment job schedule: %w", err)
		}
		jm.assignmentJob = NewDeliveryAssignmentJob(dispatchHandler, schedules.Assignment, m.Dispatches, logger)
	}
	if schedules.Audit != "" {
		if _, err := parser.Parse(schedules.Audit); err != nil {
			return nil, fmt.Errorf("invalid audit job schedule: %w", err)
		}
		jm.auditJob = NewIntegrityAuditJob(reader, schedules.Audit, m.IntegrityFaults, m.AuditRuns, logger)
	}

	return jm, nil
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.assignmentJob != nil {
		if err := jm.assignmentJob.Start(); err != nil {
			return fmt.Errorf("failed to start delivery assignment job: %w", err)
		}
		jm.started = append(jm.started, jm.assignmentJob.Stop)
	}

	if jm.auditJob != nil {
		if err := jm.auditJob.Start(); err != nil {
			// Stop already started jobs if this one fails
			jm.StopAll()
			return fmt.Errorf("failed to start integrity audit job: %w", err)
		}
		jm.started = append(jm.started, jm.auditJob.Stop)
	}

	return nil
}

// StopAll stops all started jobs gracefully, waiting for running ones.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i]()
	}
	jm.started = nil
}
