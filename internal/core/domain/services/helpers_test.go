package services_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func point(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func newDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	merchant, err := kernel.NewParty("Spice Store", "+919800000001", "MG Road 1", point(t, 12.9756, 77.6050))
	require.NoError(t, err)
	buyer, err := kernel.NewParty("Asha", "+919800000002", "Indiranagar 12", point(t, 12.9784, 77.6408))
	require.NoError(t, err)
	payout, err := kernel.NewMoney(12050, "INR")
	require.NoError(t, err)

	d, err := delivery.NewDelivery(kernel.NewUUID(), "ORD-1", merchant, buyer, payout, "", now)
	require.NoError(t, err)
	return d
}

// newCandidate builds a driver at lat/lon holding a fresh active vehicle.
func newCandidate(t *testing.T, name string, lat, lon float64) (*driver.Driver, *vehicle.Vehicle) {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "KA01-"+name[:1]+"100", "Honda Activa", vehicle.Bike)
	require.NoError(t, err)
	d, err := driver.NewDriver(kernel.NewUUID(), name, "+919800000003", point(t, lat, lon))
	require.NoError(t, err)
	require.NoError(t, v.AssignTo(d.ID()))
	require.NoError(t, d.AttachVehicle(v.ID()))
	return d, v
}

func admin(t *testing.T) delivery.Actor {
	t.Helper()
	a, err := delivery.NewActor(delivery.RoleAdmin, "ops-1")
	require.NoError(t, err)
	return a
}
