package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrListDeliveriesQueryIsNotConstructed = errors.New(
		"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
	)
)

// ListDeliveriesQuery lists deliveries in the given statuses, oldest first.
// Without statuses every delivery is listed. The admin alias
// "awaiting_confirmation" is accepted by ParseStatus and lists the same
// deliveries as "awaiting_buyer_confirmation".
type ListDeliveriesQuery struct {
	statuses []delivery.Status
	audience delivery.Audience
	guard    guard.ConstructorGuard
}

func NewListDeliveriesQuery(audience delivery.Audience, statuses ...delivery.Status) (ListDeliveriesQuery, error) {
	if audience == delivery.AudienceUnknown {
		return ListDeliveriesQuery{}, errs.NewValueIsRequiredError("audience")
	}

	unique := make([]delivery.Status, 0, len(statuses))
	seen := make(map[delivery.Status]bool, len(statuses))
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListDeliveriesQuery{}, err
		}
		if !seen[s] {
			seen[s] = true
			unique = append(unique, s)
		}
	}

	return ListDeliveriesQuery{
		statuses: unique,
		audience: audience,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListDeliveriesQuery) Statuses() []delivery.Status {
	out := make([]delivery.Status, len(q.statuses))
	copy(out, q.statuses)
	return out
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}
