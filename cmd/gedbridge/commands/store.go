package commands

import (
	"database/sql"

	"github.com/liseur-glitch/gedbridge/config"
	"github.com/liseur-glitch/gedbridge/db"
	"github.com/liseur-glitch/gedbridge/errors"
	"github.com/liseur-glitch/gedbridge/logger"
	"github.com/liseur-glitch/gedbridge/mapping"
	"github.com/liseur-glitch/gedbridge/store"
)

// openStore opens and migrates the store database. If dbPath is empty
// the configured path is used. Uses logger.Logger for db operations.
func openStore(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load configuration")
		}
		dbPath = cfg.GetStorePath()
	}

	database, err := db.OpenWithMigrations(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open store at %s", dbPath)
	}
	return database, nil
}

// openGuardedStore refuses to open while a guarded desktop process has
// the store's tables open. Write paths go through here; read-only
// inspection commands use openStore directly.
func openGuardedStore(dbPath string) (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	if err := store.CheckExclusive(cfg.GetGuardedProcesses()); err != nil {
		return nil, err
	}
	if dbPath == "" {
		dbPath = cfg.GetStorePath()
	}

	database, err := db.OpenWithMigrations(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open store at %s", dbPath)
	}
	return database, nil
}

// loadMapping loads the token mapping file, falling back to an empty
// mapping when none is configured.
func loadMapping(path string) (*mapping.Mapping, error) {
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load configuration")
		}
		path = cfg.Mapping.Path
	}
	if path == "" {
		return mapping.Empty(), nil
	}
	return mapping.Load(path)
}
