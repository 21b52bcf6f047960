// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/healthpath/portal/internal/db"
	"github.com/jmoiron/sqlx"
)

func New(t testing.TB) *sqlx.DB {
	t.Helper()

	database, err := db.Init(db.DriverSQLite, ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(context.Background(), database.DB, db.DriverSQLite)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return database
}
