// Package config loads server configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/evcraddock/hvr-studio/internal/db"
	"github.com/evcraddock/hvr-studio/internal/fsstore"
	"github.com/evcraddock/hvr-studio/internal/store"
)

// Store backends.
const (
	StoreSQLite    = "sqlite"
	StoreFirestore = "firestore"
)

// Config is the server configuration.
type Config struct {
	Port    int  `env:"HVR_PORT" envDefault:"8080"`
	DevMode bool `env:"HVR_DEV_MODE"`

	Store            string `env:"HVR_STORE" envDefault:"sqlite"`
	SQLitePath       string `env:"HVR_SQLITE_PATH"`
	SQLiteDriver     string `env:"HVR_SQLITE_DRIVER" envDefault:"sqlite3"`
	FirestoreProject string `env:"HVR_FIRESTORE_PROJECT"`
}

// Load reads envFile, if it exists, into the environment and then parses
// the environment. Variables already set win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected backend is fully configured.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("HVR_PORT must be 1-65535, got %d", c.Port)
	}

	switch c.Store {
	case StoreSQLite:
		if c.SQLiteDriver != db.DriverCGO && c.SQLiteDriver != db.DriverPure {
			return fmt.Errorf("HVR_SQLITE_DRIVER must be %s or %s, got %q", db.DriverCGO, db.DriverPure, c.SQLiteDriver)
		}
	case StoreFirestore:
		if c.FirestoreProject == "" {
			return fmt.Errorf("HVR_FIRESTORE_PROJECT is required when HVR_STORE=firestore")
		}
	default:
		return fmt.Errorf("HVR_STORE must be %s or %s, got %q", StoreSQLite, StoreFirestore, c.Store)
	}
	return nil
}

// OpenStore opens the configured document store.
func (c *Config) OpenStore(ctx context.Context) (store.Store, error) {
	switch c.Store {
	case StoreFirestore:
		return fsstore.New(ctx, c.FirestoreProject)
	case StoreSQLite:
		path := c.SQLitePath
		if path == "" {
			p, err := db.DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return db.OpenStore(c.SQLiteDriver, path)
	}
	return nil, fmt.Errorf("unknown store %q", c.Store)
}
