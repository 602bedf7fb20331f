package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/adapters/out/postgres/dbtest"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var t0 = time.Date(2026, time.April, 2, 8, 30, 0, 0, time.UTC)

type store struct {
	db      *gorm.DB
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func newStore(t *testing.T) store {
	t.Helper()
	db := dbtest.NewSQLite(t)
	return store{db: db, factory: postgres_adapter.NewGormUnitOfWorkFactory(db)}
}

func (s store) addFleet(t *testing.T, name, plate string, attach bool) (*driver.Driver, *vehicle.Vehicle) {
	t.Helper()
	ctx := context.Background()

	v, err := vehicle.NewVehicle(kernel.NewUUID(), plate, "TVS Jupiter", vehicle.Bike)
	require.NoError(t, err)
	position, err := kernel.NewGeoPoint(12.97, 77.60)
	require.NoError(t, err)
	drv, err := driver.NewDriver(kernel.NewUUID(), name, "+919811111111", position)
	require.NoError(t, err)
	if attach {
		require.NoError(t, v.AssignTo(drv.ID()))
		require.NoError(t, drv.AttachVehicle(v.ID()))
	}

	uow := s.factory.Create()
	require.NoError(t, uow.VehicleRepository().Add(ctx, v))
	require.NoError(t, uow.DriverRepository().Add(ctx, drv))
	return drv, v
}

func (s store) addDelivery(t *testing.T, d *delivery.Delivery) {
	t.Helper()
	require.NoError(t, s.factory.Create().DeliveryRepository().Add(context.Background(), d))
}

func (s store) update(t *testing.T, d *delivery.Delivery) {
	t.Helper()
	require.NoError(t, s.factory.Create().DeliveryRepository().Update(context.Background(), d))
}

func newDelivery(t *testing.T, orderID string, at time.Time) *delivery.Delivery {
	t.Helper()
	mp, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	bp, err := kernel.NewGeoPoint(12.9352, 77.6245)
	require.NoError(t, err)
	merchant, err := kernel.NewParty("Fresh Mart", "+919800000010", "Residency Road 4", mp)
	require.NoError(t, err)
	buyer, err := kernel.NewParty("Meera", "+919800000011", "Koramangala 5th Block", bp)
	require.NoError(t, err)
	payout, err := kernel.NewMoney(9900, "INR")
	require.NoError(t, err)

	d, err := delivery.NewDelivery(kernel.NewUUID(), orderID, merchant, buyer, payout, "4821", at)
	require.NoError(t, err)
	return d
}

func adminActor(t *testing.T) delivery.Actor {
	t.Helper()
	a, err := delivery.NewActor(delivery.RoleAdmin, "ops")
	require.NoError(t, err)
	return a
}

// dispatched moves d to awaiting pickup with drv and v.
func dispatched(t *testing.T, d *delivery.Delivery, drv *driver.Driver, v *vehicle.Vehicle) {
	t.Helper()
	vID := v.ID()
	require.NoError(t, d.AssignDriver(adminActor(t), drv.ID(), &vID, t0.Add(time.Minute)))
	require.NoError(t, d.MarkAwaitingPickup(adminActor(t), t0.Add(2*time.Minute)))
}
