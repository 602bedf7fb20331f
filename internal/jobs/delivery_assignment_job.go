package jobs

import (
	"context"
	"errors"

	"parceltrack/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DispatchHandler runs one automatic dispatch.
type DispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchDriverCommand) error
}

// DeliveryAssignmentJob manages the scheduled dispatch of unassigned
// deliveries. Each run assigns at most one delivery.
type DeliveryAssignmentJob struct {
	handler DispatchHandler
	spec    string
	runs    *prometheus.CounterVec
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewDeliveryAssignmentJob creates the dispatch job. runs must carry the
// "result" label.
func NewDeliveryAssignmentJob(handler DispatchHandler, spec string, runs *prometheus.CounterVec, logger *zap.Logger) *DeliveryAssignmentJob {
	return &DeliveryAssignmentJob{
		handler: handler,
		spec:    spec,
		runs:    runs,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With(zap.String("component", "delivery_assignment_job")),
	}
}

// Start schedules the job.
func (j *DeliveryAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Delivery assignment job started", zap.String("schedule", j.spec))
	return nil
}

// Run performs one dispatch attempt.
func (j *DeliveryAssignmentJob) Run(ctx context.Context) {
	err := j.handler.Handle(ctx, commands.NewDispatchDriverCommand())
	switch {
	case err == nil:
		j.runs.WithLabelValues("assigned").Inc()
	case errors.Is(err, commands.ErrNoUnassignedDelivery):
		j.runs.WithLabelValues("idle").Inc()
	case errors.Is(err, commands.ErrNoFreeDriversFound):
		j.runs.WithLabelValues("no_driver").Inc()
	default:
		j.runs.WithLabelValues("error").Inc()
		j.logger.Error("Delivery assignment job failed", zap.Error(err))
	}
}

// Stop stops scheduling and waits for a running dispatch to finish.
func (j *DeliveryAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Delivery assignment job stopped")
}
