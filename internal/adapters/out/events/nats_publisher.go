package events

import (
	"context"
	stderrors "errors"

	"parceltrack/internal/core/domain/model/kernel"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	PublishMsg(msg *nats.Msg) error
}

// NATSPublisher sends each event as a JSON envelope to
// "<prefix>.<event type>", e.g. "parceltrack.delivery.status_changed".
type NATSPublisher struct {
	conn   Conn
	prefix string
}

func NewNATSPublisher(conn Conn, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix}
}

// Subject returns the subject an event of the given type is sent to.
func (p *NATSPublisher) Subject(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}

// Publish sends every event, continuing past failures. The returned error
// joins all failures.
func (p *NATSPublisher) Publish(ctx context.Context, events ...kernel.Event) error {
	var failures []error
	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "publish cancelled")
		}

		data, err := encode(e)
		if err != nil {
			failures = append(failures, err)
			continue
		}

		msg := nats.NewMsg(p.Subject(e.EventType()))
		msg.Header.Set("Event-Type", e.EventType())
		msg.Data = data
		if err := p.conn.PublishMsg(msg); err != nil {
			failures = append(failures, errors.Wrapf(err, "publish %s", msg.Subject))
		}
	}
	return stderrors.Join(failures...)
}
