package main

import (
	"github.com/GiovanniPerreon/gacha-arena/internal/config"
	"github.com/GiovanniPerreon/gacha-arena/internal/logging"
	"github.com/GiovanniPerreon/gacha-arena/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": path, "hint": "create an arena_config.json with a 'unit_list' array of unit objects (name,stars,hit_points,attack,defense,ability,ability_keys,spells) and optional keys: star_rates, summon_cost, server.address, battle_timeout_seconds"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
