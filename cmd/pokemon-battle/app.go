package main

import (
	"errors"
	"io"
	"os"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/catalog"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/config"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/constants"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/ids"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/logging"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/storage"
)

// setupLogOutput mirrors log lines into a rotating file when one is
// configured. The returned func closes the file.
func setupLogOutput(cfg *config.LoadedConfig) func() {
	if cfg.LogFile == "" {
		return func() {}
	}
	w := logging.NewRotatingFile(logging.FileOptions{
		Path:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	logging.SetOutput(io.MultiWriter(os.Stderr, w))
	return func() { _ = w.Close() }
}

func loadCatalogOrExit(path string, maxEntities uint64) *catalog.Catalog {
	records, err := catalog.LoadCSV(path)
	if err != nil {
		logging.Fatal("Failed to read pokemon data", err, logging.Fields{constants.LogFieldPath: path})
	}
	c := catalog.New(ids.NewSequence(maxEntities))
	if err := c.Load(records); err != nil {
		fields := logging.Fields{constants.LogFieldPath: path}
		var verr *game.ValidationError
		if errors.As(err, &verr) {
			fields["record"] = verr.Record
			fields["field"] = verr.Field
		}
		logging.Fatal("Invalid pokemon data", err, fields)
	}
	logging.Info("Pokemon data loaded", logging.Fields{constants.LogFieldPath: path, constants.LogFieldCount: c.Count()})
	return c
}

func createRepositoryOrExit(driver, dsn string) storage.Repository {
	if driver != constants.StoreDriverSQLite {
		return storage.NewMemoryRepository()
	}
	db, err := storage.OpenDB(dsn)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
