// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for the presentation surfaces.
package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetDeliveryQueryIsNotConstructed = errors.New(
		"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
	)
)

// GetDeliveryQuery retrieves one delivery rendered for an audience.
// When an actor is given, the response lists the statuses that actor could
// move the delivery to right now.
//
// Example:
//
//	query, err := NewGetDeliveryQuery(id, delivery.AudienceDriver, &driverActor)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	fmt.Println(view.Label, view.PickupProgress.Text)
type GetDeliveryQuery struct {
	deliveryID kernel.UUID
	audience   delivery.Audience
	actor      *delivery.Actor
	guard      guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a detail query. audience must be known; actor
// may be nil.
func NewGetDeliveryQuery(deliveryID kernel.UUID, audience delivery.Audience, actor *delivery.Actor) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, errs.NewValueIsRequiredError("deliveryID")
	}
	if audience == delivery.AudienceUnknown {
		return GetDeliveryQuery{}, errs.NewValueIsRequiredError("audience")
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return GetDeliveryQuery{}, err
		}
	}

	return GetDeliveryQuery{
		deliveryID: deliveryID,
		audience:   audience,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

func (q GetDeliveryQuery) Audience() delivery.Audience {
	return q.audience
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}
