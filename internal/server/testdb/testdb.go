// Package testdb opens a migrated SQLite database for tests.
package testdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/taskmaster/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

// Open returns a fresh file-backed SQLite database in t.TempDir with all
// migrations applied, plus the manager that created it. The database is
// closed on cleanup.
func Open(t testing.TB) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()

	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "taskmaster.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := repomanager.Open(ctx, repomanager.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := repomanager.NewSQLRepositoryManager(repomanager.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(ctx, db))

	return db, m
}
