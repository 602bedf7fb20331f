package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/pkg/guard"
)

var ErrDispatchDriverCommandIsNotConstructed = errors.New(
	"DispatchDriverCommand must be created via NewDispatchDriverCommand constructor",
)

// DispatchDriverCommand triggers the assignment of the nearest free driver to
// the oldest delivery that has none. It is issued by the scheduler as the
// system dispatcher.
//
// Example:
//
//	cmd := NewDispatchDriverCommand()
//	handler := NewDispatchDriverCommandHandler(runtime)
//	err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("No deliveries to dispatch or no free drivers: %v", err)
//	}
type DispatchDriverCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchDriverCommand creates a new command to trigger driver dispatch.
// This is a parameterless command.
func NewDispatchDriverCommand() DispatchDriverCommand {
	return DispatchDriverCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c DispatchDriverCommand) Validate() error {
	return c.guard.Validate(ErrDispatchDriverCommandIsNotConstructed)
}

// Actor is the identity recorded on the timeline for dispatch.
func (c DispatchDriverCommand) Actor() delivery.Actor {
	return delivery.SystemActor("dispatcher")
}
