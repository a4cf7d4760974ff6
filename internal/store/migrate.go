package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
)

// Each backend has its own dialect subdirectory under migrations/.
//
//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// dialectFor maps a backend to its sql driver name and migration directory.
func dialectFor(backend schema.DatabaseBackend) (driverName, dialect string, err error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", "postgres", nil
	default:
		return "", "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// migrateDriver wraps an open connection in the matching golang-migrate driver.
func migrateDriver(backend schema.DatabaseBackend, db *sql.DB) (database.Driver, error) {
	switch backend {
	case schema.SQLiteBackend:
		return sqlite.WithInstance(db, &sqlite.Config{})
	case schema.MySQLBackend:
		return mysql.WithInstance(db, &mysql.Config{})
	default:
		return postgres.WithInstance(db, &postgres.Config{})
	}
}

// Migrate runs versioned schema migrations for the proposal store.
// A negative targetVersion migrates to the latest version, zero rolls
// everything back, and a positive value pins that exact version.
func Migrate(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if backend == schema.NoneBackend {
		return errors.New("migrations are not supported for the none backend")
	}

	driverName, dialect, err := dialectFor(backend)
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	driver, err := migrateDriver(backend, db)
	if err != nil {
		return fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	dialectDir, err := fs.Sub(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return fmt.Errorf("failed to access migrations directory: %w", err)
	}
	sourceDriver, err := iofs.New(dialectDir, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "grantscope", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("store schema is dirty at version %d; repair or force the version before migrating", currentVersion)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	if err == migrate.ErrNoChange {
		fmt.Printf("Store schema already up to date at version %d\n", currentVersion)
		return nil
	}
	newVersion, _, _ := m.Version()
	fmt.Printf("Store schema migrated from version %d to version %d\n", currentVersion, newVersion)
	return nil
}
