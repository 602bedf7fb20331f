package events

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// InstrumentedPublisher counts published events by type and result and logs
// failures. It never returns the inner error: after commit there is nobody
// left to handle it.
type InstrumentedPublisher struct {
	next    ports.EventPublisher
	counter *prometheus.CounterVec
	logger  *zap.Logger
}

// NewInstrumentedPublisher wraps next. counter must have the labels
// "type" and "result".
func NewInstrumentedPublisher(next ports.EventPublisher, counter *prometheus.CounterVec, logger *zap.Logger) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next, counter: counter, logger: logger.Named("events")}
}

func (p *InstrumentedPublisher) Publish(ctx context.Context, events ...kernel.Event) error {
	if len(events) == 0 {
		return nil
	}

	result := "ok"
	if err := p.next.Publish(ctx, events...); err != nil {
		result = "error"
		p.logger.Warn("failed to publish domain events", zap.Int("count", len(events)), zap.Error(err))
	}
	for _, e := range events {
		p.counter.WithLabelValues(e.EventType(), result).Inc()
	}
	return nil
}

// Fanout publishes to every publisher in order and returns the first error.
type Fanout []ports.EventPublisher

func (f Fanout) Publish(ctx context.Context, events ...kernel.Event) error {
	var first error
	for _, p := range f {
		if err := p.Publish(ctx, events...); err != nil && first == nil {
			first = err
		}
	}
	return first
}
