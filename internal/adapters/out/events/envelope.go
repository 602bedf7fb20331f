// Package events delivers committed domain events. Every publisher here is
// best effort: errors are returned for logging, never to undo a change.
package events

import (
	"encoding/json"
	"time"

	"parceltrack/internal/core/domain/model/kernel"

	"github.com/pkg/errors"
)

// Envelope is the wire form of a domain event.
type Envelope struct {
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

func encode(e kernel.Event) ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s payload", e.EventType())
	}
	data, err := json.Marshal(Envelope{
		Type:        e.EventType(),
		AggregateID: e.AggregateID().String(),
		OccurredAt:  e.OccurredAt().UTC(),
		Payload:     payload,
	})
	return data, errors.Wrapf(err, "encode %s envelope", e.EventType())
}
