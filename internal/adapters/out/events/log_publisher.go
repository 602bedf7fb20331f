package events

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// LogPublisher writes events to the log. It is the publisher of last resort
// when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.Named("events")}
}

func (p *LogPublisher) Publish(_ context.Context, events ...kernel.Event) error {
	for _, e := range events {
		p.logger.Info("domain event",
			zap.String("type", e.EventType()),
			zap.String("aggregate_id", e.AggregateID().String()),
			zap.Time("occurred_at", e.OccurredAt()),
			zap.Any("payload", e),
		)
	}
	return nil
}
