// Package dbtest opens throwaway in-memory SQLite databases for store tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/mind-engage/lessonhub/internal/db"
)

// Open returns a migrated, private in-memory database closed at test cleanup.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return dbh
}
