// Package dbtest opens throwaway databases with the delivery schema for
// repository and query tests.
package dbtest

import (
	"fmt"
	"testing"

	"parceltrack/internal/adapters/out/postgres/deliveryrepo"
	"parceltrack/internal/adapters/out/postgres/driverrepo"
	"parceltrack/internal/adapters/out/postgres/vehiclerepo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every persisted DTO in creation order.
func Models() []any {
	return []any{
		&vehiclerepo.VehicleDTO{},
		&driverrepo.DriverDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.TimelineEntryDTO{},
		&deliveryrepo.DisputeDTO{},
	}
}

// NewSQLite returns a private in-memory SQLite database with the schema
// migrated. The database lives as long as the test.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

// Truncate empties every table, children first.
func Truncate(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, table := range []string{"delivery_disputes", "delivery_timeline_entries", "deliveries", "drivers", "vehicles"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
}
