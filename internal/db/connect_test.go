package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteAppliesMigrations(t *testing.T) {
	ctx := context.Background()
	dbh, err := Open(ctx, DriverSQLite, "file:connect_test?mode=memory&cache=shared")
	require.NoError(t, err)
	defer dbh.Close()

	for _, table := range []string{"users", "courses", "modules", "lessons", "assessments", "grades", "enrollments", "event_log"} {
		var n int
		err := dbh.QueryRowContext(ctx, `SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name=$1`, table).Scan(&n)
		require.NoError(t, err)
		assert.Equalf(t, 1, n, "table %s missing", table)
	}

	// running again is a no-op
	require.NoError(t, Migrate(dbh, DriverSQLite))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Driver("mysql"), "")
	assert.Error(t, err)
}

func TestOpen_SQLiteEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	dbh, err := Open(ctx, DriverSQLite, "file:fk_test?mode=memory&cache=shared")
	require.NoError(t, err)
	defer dbh.Close()

	var on int
	require.NoError(t, dbh.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)

	_, err = dbh.ExecContext(ctx, `INSERT INTO courses (id, name, created_at) VALUES ('c1', 'C', 1)`)
	require.NoError(t, err)
	_, err = dbh.ExecContext(ctx, `INSERT INTO modules (id, course_id, name, created_at) VALUES ('m1', 'c1', 'M', 1)`)
	require.NoError(t, err)
	_, err = dbh.ExecContext(ctx, `DELETE FROM courses WHERE id='c1'`)
	require.NoError(t, err)

	var left int
	require.NoError(t, dbh.QueryRowContext(ctx, `SELECT COUNT(1) FROM modules`).Scan(&left))
	assert.Zero(t, left)
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "file:x.db?_pragma=foreign_keys(1)", withForeignKeys("file:x.db"))
	assert.Equal(t, "file:x.db?mode=rwc&_pragma=foreign_keys(1)", withForeignKeys("file:x.db?mode=rwc"))
	assert.Equal(t, "file:x.db?_pragma=foreign_keys(0)", withForeignKeys("file:x.db?_pragma=foreign_keys(0)"))
}
