package main

import (
	"github.com/valtyr/warspire/internal/config"
	"github.com/valtyr/warspire/internal/game"
	"github.com/valtyr/warspire/internal/logging"
	"github.com/valtyr/warspire/internal/storage"
)

func loadServerOrExit() *config.Server {
	srv, err := config.LoadServer()
	if err != nil {
		logging.Fatal("Invalid server environment configuration", err, nil)
	}
	return srv
}

func loadCatalogOrExit(path string) *game.Catalog {
	cat, err := config.LoadCatalog(path)
	if err != nil {
		logging.Fatal("Missing or invalid game catalog", err, logging.Fields{"config_path": path})
	}
	return cat
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
