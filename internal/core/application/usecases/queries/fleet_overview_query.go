package queries

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrFleetOverviewQueryIsNotConstructed = errors.New(
		"FleetOverviewQuery must be created via NewFleetOverviewQuery constructor",
	)
)

// FleetOverviewQuery lists drivers and vehicles with their derived active
// delivery counts. Either half can be switched off; the HTTP listing
// endpoints ask for one side only.
type FleetOverviewQuery struct {
	drivers  bool
	vehicles bool
	guard    guard.ConstructorGuard
}

func NewFleetOverviewQuery(drivers, vehicles bool) (FleetOverviewQuery, error) {
	return FleetOverviewQuery{
		drivers:  drivers,
		vehicles: vehicles,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q FleetOverviewQuery) Validate() error {
	return q.guard.Validate(ErrFleetOverviewQueryIsNotConstructed)
}
