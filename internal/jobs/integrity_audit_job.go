package jobs

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AuditReport is the outcome of one audit run.
type AuditReport struct {
	Checked int
	Faulty  []string
}

// IntegrityAuditJob reloads every active delivery through the repository,
// which checks lifecycle invariants on load, and reports the ones that fail.
// Nothing is repaired.
type IntegrityAuditJob struct {
	reader ports.DeliveryReader
	spec   string
	faults prometheus.Gauge
	runs   prometheus.Counter
	cron   *cron.Cron
	logger *zap.Logger
}

func NewIntegrityAuditJob(
	reader ports.DeliveryReader,
	spec string,
	faults prometheus.Gauge,
	runs prometheus.Counter,
	logger *zap.Logger,
) *IntegrityAuditJob {
	return &IntegrityAuditJob{
		reader: reader,
		spec:   spec,
		faults: faults,
		runs:   runs,
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With(zap.String("component", "integrity_audit_job")),
	}
}

func (j *IntegrityAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		if _, runErr := j.Run(context.Background()); runErr != nil {
			j.logger.Error("Integrity audit failed", zap.Error(runErr))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Integrity audit job started", zap.String("schedule", j.spec))
	return nil
}

// Run audits every active delivery once. Only infrastructure failures are
// returned; integrity faults are part of the report.
func (j *IntegrityAuditJob) Run(ctx context.Context) (AuditReport, error) {
	ids, err := j.reader.ListIDsByStatus(ctx, delivery.ActiveStatuses()...)
	if err != nil {
		return AuditReport{}, err
	}

	report := AuditReport{Faulty: make([]string, 0)}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		_, getErr := j.reader.Get(ctx, id)
		switch {
		case getErr == nil:
		case errors.Is(getErr, errs.ErrDataIntegrity):
			report.Faulty = append(report.Faulty, id.String())
			j.logger.Error("Delivery failed integrity check",
				zap.String("delivery_id", id.String()), zap.Error(getErr))
		case errors.Is(getErr, errs.ErrObjectNotFound):
			// Deleted between listing and loading.
			continue
		default:
			return report, getErr
		}
		report.Checked++
	}

	j.faults.Set(float64(len(report.Faulty)))
	j.runs.Inc()
	j.logger.Info("Integrity audit finished",
		zap.Int("checked", report.Checked), zap.Int("faulty", len(report.Faulty)))
	return report, nil
}

func (j *IntegrityAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Integrity audit job stopped")
}
