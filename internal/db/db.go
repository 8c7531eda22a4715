// Package db provides the SQLite-backed document store.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	// DriverCGO is the mattn/go-sqlite3 driver.
	DriverCGO = "sqlite3"
	// DriverPure is the modernc.org/sqlite driver, which needs no C toolchain.
	DriverPure = "sqlite"
)

// DefaultPath returns the default database path: ~/.config/hvr/studio.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "hvr", "studio.db"), nil
}

// Open opens (or creates) a SQLite database at the given path with the
// default driver.
func Open(path string) (*sql.DB, error) {
	return OpenDriver(DriverCGO, path)
}

// OpenDriver opens (or creates) a SQLite database at path using the named
// driver, applies pragmas and brings the schema up to date.
func OpenDriver(driver, path string) (*sql.DB, error) {
	if driver != DriverCGO && driver != DriverPure {
		return nil, fmt.Errorf("unknown sqlite driver %q", driver)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	for _, step := range []struct {
		name string
		fn   func(*sql.DB) error
	}{
		{"configuring database", configure},
		{"running migrations", migrate},
	} {
		if err := step.fn(db); err != nil {
			return nil, errors.Join(fmt.Errorf("%s: %w", step.name, err), db.Close())
		}
	}

	return db, nil
}

// configure sets SQLite pragmas. A single connection serializes writers,
// so read-modify-write transactions never interleave.
func configure(db *sql.DB) error {
	db.SetMaxOpenConns(1)

	for _, p := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("executing %s: %w", p, err)
		}
	}
	return nil
}
