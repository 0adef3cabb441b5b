package storage

import (
	"github.com/GiovanniPerreon/gacha-arena/internal/game"
)

type Repository interface {
	// Inventory
	GetInventory(userID string) ([]game.OwnedUnit, error)
	AddUnits(units []game.OwnedUnit) error
	GetUnitByID(id uint) (*game.OwnedUnit, error)
	UpdateUnit(u *game.OwnedUnit) error
	// ClearInventory removes every unit owned by the user. Prestige uses it.
	ClearInventory(userID string) error
	// AllInventories returns every owned unit grouped by owner.
	AllInventories() (map[string][]game.OwnedUnit, error)

	// Profiles. GetProfile creates the row on first access with the
	// starting point balance, so callers never see a missing profile.
	GetProfile(userID string) (*game.PlayerProfile, error)
	SaveProfile(p *game.PlayerProfile) error
	// Leaderboard
	GetTopProfiles(limit int) ([]game.PlayerProfile, error)

	// Bank (single global row, created on first access)
	GetBank() (*game.Bank, error)
	SaveBank(b *game.Bank) error

	// Boss. GetBoss returns (nil, nil) when no boss row exists yet.
	GetBoss() (*game.BossRecord, error)
	SaveBoss(b *game.BossRecord) error
}
