package delivery_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return t0.Add(time.Duration(minutes) * time.Minute)
}

func newParty(t *testing.T, name, phone string, lat, lon float64) kernel.Party {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	p, err := kernel.NewParty(name, phone, name+" street 1", point)
	require.NoError(t, err)
	return p
}

func newDeliveryWithCode(t *testing.T, orderID, pickupCode string) *delivery.Delivery {
	t.Helper()
	payout, err := kernel.NewMoney(12050, "INR")
	require.NoError(t, err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		orderID,
		newParty(t, "Spice Store", "+919800000001", 12.9756, 77.6050),
		newParty(t, "Asha", "+919800000002", 12.9784, 77.6408),
		payout,
		pickupCode,
		t0,
	)
	require.NoError(t, err)
	return d
}

func newDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	return newDeliveryWithCode(t, "ORD-1", "")
}

func actor(t *testing.T, role delivery.Role, identity string) delivery.Actor {
	t.Helper()
	a, err := delivery.NewActor(role, identity)
	require.NoError(t, err)
	return a
}

func admin(t *testing.T) delivery.Actor {
	t.Helper()
	return actor(t, delivery.RoleAdmin, "ops-1")
}

func buyer(t *testing.T) delivery.Actor {
	t.Helper()
	return actor(t, delivery.RoleBuyer, "Customer")
}

func merchant(t *testing.T) delivery.Actor {
	t.Helper()
	return actor(t, delivery.RoleMerchant, "Spice Store")
}

// fixture is a delivery with its assigned driver and vehicle.
type fixture struct {
	d       *delivery.Delivery
	driver  kernel.UUID
	vehicle kernel.UUID
}

func (f fixture) driverActor() delivery.Actor {
	return delivery.DriverActor(f.driver)
}

func assigned(t *testing.T) fixture {
	t.Helper()
	f := fixture{d: newDelivery(t), driver: kernel.NewUUID(), vehicle: kernel.NewUUID()}
	require.NoError(t, f.d.AssignDriver(admin(t), f.driver, &f.vehicle, at(1)))
	f.d.ClearDomainEvents()
	return f
}

func awaitingPickup(t *testing.T) fixture {
	t.Helper()
	f := assigned(t)
	require.NoError(t, f.d.MarkAwaitingPickup(delivery.SystemActor("dispatcher"), at(2)))
	f.d.ClearDomainEvents()
	return f
}

// submitPickup completes the first n pickup steps.
func submitPickup(t *testing.T, f fixture, n int) {
	t.Helper()
	values := []string{"1234", "media://goods/1", "media://id/1", "media://selfie/1"}
	for i, step := range delivery.PickupSteps()[:n] {
		res, err := f.d.SubmitStep(f.driverActor(), step, values[i], at(3+i))
		require.NoError(t, err)
		require.True(t, res.Accepted)
	}
}

func inTransit(t *testing.T) fixture {
	t.Helper()
	f := awaitingPickup(t)
	submitPickup(t, f, 4)
	require.NoError(t, f.d.StartTransit(f.driverActor(), at(10)))
	f.d.ClearDomainEvents()
	return f
}

func awaitingConfirmation(t *testing.T) fixture {
	t.Helper()
	f := inTransit(t)
	_, err := f.d.SubmitStep(f.driverActor(), delivery.StepDeliveryPhoto, "media://drop/1", at(20))
	require.NoError(t, err)
	require.NoError(t, f.d.RequestBuyerConfirmation(f.driverActor(), at(21)))
	f.d.ClearDomainEvents()
	return f
}

func timelineStatuses(d *delivery.Delivery) []delivery.Status {
	entries := d.Timeline().Entries()
	out := make([]delivery.Status, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Status())
	}
	return out
}

func eventTypes(d *delivery.Delivery) []string {
	events := d.DomainEvents()
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.EventType())
	}
	return out
}

// requireLastEntryMatchesStatus checks the timeline tail against the status.
func requireLastEntryMatchesStatus(t *testing.T, d *delivery.Delivery) {
	t.Helper()
	last, ok := d.Timeline().Last()
	require.True(t, ok)
	require.Equal(t, d.Status(), last.Status())
}
