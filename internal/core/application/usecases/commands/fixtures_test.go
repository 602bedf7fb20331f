package commands_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/require"
)

func point(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func parties(t *testing.T) (kernel.Party, kernel.Party) {
	t.Helper()
	merchant, err := kernel.NewParty("Spice Store", "+919800000001", "MG Road 1", point(t, 12.9756, 77.6050))
	require.NoError(t, err)
	buyer, err := kernel.NewParty("Asha", "+919800000002", "Indiranagar 12", point(t, 12.9784, 77.6408))
	require.NoError(t, err)
	return merchant, buyer
}

func payout(t *testing.T) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(12050, "INR")
	require.NoError(t, err)
	return m
}

func newDelivery(t *testing.T, pickupCode string) *delivery.Delivery {
	t.Helper()
	merchant, buyer := parties(t)
	d, err := delivery.NewDelivery(kernel.NewUUID(), "ORD-1", merchant, buyer, payout(t), pickupCode, now)
	require.NoError(t, err)
	d.ClearDomainEvents()
	return d
}

func admin(t *testing.T) delivery.Actor {
	t.Helper()
	a, err := delivery.NewActor(delivery.RoleAdmin, "ops-1")
	require.NoError(t, err)
	return a
}

func buyerActor(t *testing.T) delivery.Actor {
	t.Helper()
	a, err := delivery.NewActor(delivery.RoleBuyer, "Asha")
	require.NoError(t, err)
	return a
}

// newFleet builds a driver holding an active vehicle.
func newFleet(t *testing.T) (*driver.Driver, *vehicle.Vehicle) {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "KA01AB1234", "Honda Activa", vehicle.Bike)
	require.NoError(t, err)
	drv, err := driver.NewDriver(kernel.NewUUID(), "Ravi", "+919800000003", point(t, 12.9760, 77.6060))
	require.NoError(t, err)
	require.NoError(t, v.AssignTo(drv.ID()))
	require.NoError(t, drv.AttachVehicle(v.ID()))
	return drv, v
}

// awaitingPickup returns a delivery assigned to drv with v, promoted to awaiting_pickup.
func awaitingPickup(t *testing.T, drv *driver.Driver, v *vehicle.Vehicle) *delivery.Delivery {
	t.Helper()
	d := newDelivery(t, "")
	vehicleID := v.ID()
	require.NoError(t, d.AssignDriver(admin(t), drv.ID(), &vehicleID, now))
	require.NoError(t, d.MarkAwaitingPickup(admin(t), now))
	d.ClearDomainEvents()
	return d
}

// inTransit returns a delivery with complete pickup proof that left the merchant.
func inTransit(t *testing.T, drv *driver.Driver, v *vehicle.Vehicle) *delivery.Delivery {
	t.Helper()
	d := awaitingPickup(t, drv, v)
	values := []string{"1234", "media://goods/1", "media://id/1", "media://selfie/1"}
	for i, step := range delivery.PickupSteps() {
		_, err := d.SubmitStep(delivery.DriverActor(drv.ID()), step, values[i], now)
		require.NoError(t, err)
	}
	require.NoError(t, d.StartTransit(delivery.DriverActor(drv.ID()), now))
	d.ClearDomainEvents()
	return d
}
