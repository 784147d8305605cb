package main

import (
	"github.com/idl3o/tasern-3-sub001/internal/config"
	"github.com/idl3o/tasern-3-sub001/internal/constants"
	"github.com/idl3o/tasern-3-sub001/internal/logging"
	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid tasern configuration", err, logging.Fields{
			constants.LogFieldConfigPath: path,
			"hint":                       "create a tasern_config.json with a 'card_list' array of card objects (name,attack,defense,hit_points,speed,mana_cost,rarity,combat_type,abilities) and an optional 'battle' section",
		})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, cfg *config.LoadedConfig) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, cfg.Cards)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, cfg.Cards)
}
