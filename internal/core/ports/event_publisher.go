package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
)

// EventPublisher delivers domain events to the outside world after commit.
// Publication is best effort: a failure never undoes the committed change.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.Event) error
}
