// Package migrations holds the versioned schema of the delivery store and
// applies it with goose. The SQL files are embedded into the binary.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	_ "github.com/lib/pq" // postgres driver for database/sql
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

// Up applies every pending migration to the database reachable through dsn.
func Up(ctx context.Context, dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return errors.Wrap(err, "open migration connection")
	}
	defer db.Close()

	return UpDB(ctx, db)
}

// UpDB applies every pending migration using an open connection.
func UpDB(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(files)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}

// Version reports the current schema version.
func Version(ctx context.Context, dsn string) (int64, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return 0, errors.Wrap(err, "open migration connection")
	}
	defer db.Close()

	if err = goose.SetDialect("postgres"); err != nil {
		return 0, errors.Wrap(err, "set goose dialect")
	}
	return goose.GetDBVersionContext(ctx, db)
}
