// Package repomanager provides a concrete RepositoryManager for the SQL
// backends, wiring together repository constructors and database migrations
// (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/taskmaster/internal/dbx"
	"github.com/dmitrijs2005/taskmaster/internal/filex"
	"github.com/dmitrijs2005/taskmaster/internal/server/migrations"
	"github.com/dmitrijs2005/taskmaster/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskmaster/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type backend struct {
	sqlDriver string
	dialect   goose.Dialect
}

var backends = map[string]backend{
	DriverPostgres: {sqlDriver: "pgx", dialect: goose.DialectPostgres},
	DriverSQLite:   {sqlDriver: "sqlite", dialect: goose.DialectSQLite3},
}

// SQLRepositoryManager vends SQL repositories and runs the migrations that
// match its driver.
type SQLRepositoryManager struct {
	driver string
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Tasks returns a tasks.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Tasks(db dbx.DBTX) tasks.Repository {
	return tasks.NewSQLRepository(db)
}

// migrationsUp is a seam for testing the goose provider.
var migrationsUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// RunMigrations applies the embedded migrations for the manager's driver.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	b := backends[m.driver]

	fsys, err := fs.Sub(migrations.Migrations, m.driver)
	if err != nil {
		return fmt.Errorf("migrations for %s: %w", m.driver, err)
	}

	if err := migrationsUp(ctx, b.dialect, db, fsys); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for driver
// ("postgres" or "sqlite").
func NewSQLRepositoryManager(driver string) (RepositoryManager, error) {
	if _, ok := backends[driver]; !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return &SQLRepositoryManager{driver: driver}, nil
}

// Open opens a connection pool for driver and dsn and checks it is alive.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	b, ok := backends[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if driver == DriverSQLite {
		if p := filex.SQLitePath(dsn); p != "" {
			if _, err := filex.EnsureParentDir(p); err != nil {
				return nil, fmt.Errorf("db dir error: %w", err)
			}
		}
	}

	db, err := sql.Open(b.sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if driver == DriverSQLite {
		// one writer at a time; avoids SQLITE_BUSY under concurrent requests
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return db, nil
}
