package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
)

// Runtime bundles the infrastructure shared by every command handler.
// Publisher and Clock are optional; Clock defaults to time.Now.
type Runtime struct {
	UoWFactory UoWFactory
	Locker     ports.Locker
	Publisher  ports.EventPublisher
	Clock      func() time.Time
}

// lockFunc takes one more logical lock from inside a unit of work. The lock
// is held until the transaction is finished.
type lockFunc func(key string) error

// work is the body of a use case. It returns the domain events to publish
// once the transaction is committed.
type work func(uow UoW, now time.Time, lock lockFunc) ([]kernel.Event, error)

// run takes the logical locks in the given order, executes fn inside one
// unit of work and publishes the collected events once the unit of work is
// finished and every lock is released.
func (r Runtime) run(ctx context.Context, keys []string, fn work) error {
	events, err := r.transact(ctx, keys, fn)
	if err != nil {
		return err
	}

	if r.Publisher != nil && len(events) > 0 {
		_ = r.Publisher.Publish(ctx, events...)
	}

	return nil
}

func (r Runtime) transact(ctx context.Context, keys []string, fn work) ([]kernel.Event, error) {
	unlock, err := r.lock(ctx, keys)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var extra []ports.Unlock
	defer func() {
		for i := len(extra) - 1; i >= 0; i-- {
			extra[i]()
		}
	}()
	lockMore := func(key string) error {
		more, lockErr := r.Locker.Lock(ctx, key)
		if lockErr != nil {
			return lockErr
		}
		extra = append(extra, more)
		return nil
	}

	uow := r.UoWFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	events, err := fn(uow, r.now(), lockMore)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return events, nil
}

func (r Runtime) lock(ctx context.Context, keys []string) (ports.Unlock, error) {
	held := make([]ports.Unlock, 0, len(keys))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i]()
		}
	}

	for _, key := range keys {
		unlock, err := r.Locker.Lock(ctx, key)
		if err != nil {
			release()
			return nil, err
		}
		held = append(held, unlock)
	}

	return release, nil
}

func (r Runtime) now() time.Time {
	if r.Clock == nil {
		return time.Now().UTC()
	}
	return r.Clock().UTC()
}
