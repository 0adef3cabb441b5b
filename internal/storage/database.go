package storage

import (
	"github.com/GiovanniPerreon/gacha-arena/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens (or creates) the SQLite database at dataSourceName
// and brings the schema up to date. The database is the source of truth for
// inventories, balances and the boss; the catalog lives in the config file
// and is never persisted.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&game.OwnedUnit{}, &game.PlayerProfile{}, &game.Bank{}, &game.BossRecord{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
